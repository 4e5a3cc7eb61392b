package json

import (
	"fmt"
	"math"
	"strings"
	"testing"

	"github.com/win32asm/json/bound"
	"github.com/win32asm/json/parser/json/value"

	"github.com/stretchr/testify/require"
)

func TestParseError(t *testing.T) {
	p := NewParser(NewOptions())
	parseErrorTests := []struct {
		name   string
		in     string
		errstr string
	}{
		{"invalid string escape", `"fo\u"`, "syntax error"},
		{"invalid string escape", `"foo\ubarz2134"`, "syntax error"},
		{"invalid number", "123+456", "cannot parse number"},
		{"invalid number", "123.456.789", "cannot parse number"},
		{"empty json", "", "cannot parse empty string"},
		{"empty json", "\n\t    \n", "cannot parse empty string"},
		{"invalid tail", "123 456", "unexpected tail after parsing"},
		{"invalid tail", "[] 1223", "unexpected tail after parsing"},
	}
	for _, tt := range parseErrorTests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := p.Parse(tt.in)
			require.Error(t, err)
			require.True(t, strings.Contains(err.Error(), tt.errstr))
		})
	}
}

func TestParserParseInvalidJSON(t *testing.T) {
	p := NewParser(NewOptions())
	inputs := []string{
		"free",
		"tree",
		"\x00\x10123",
		"1 \n\x01",
		"{\x00}",
		"[\x00]",
		"\"foo\"\x00",
		"{\"foo\"\x00:123}",
		"nil",
		"[foo]",
		"{foo}",
		"[123 34]",
		`{"foo" "bar"}`,
		`{"foo":123 "bar":"baz"}`,
		"-2134.453eec+43",
		`{"foo: 123}`,
		`"{\"foo\": 123}`,
	}
	for _, input := range inputs {
		_, err := p.Parse(input)
		require.Error(t, err)
	}
}

func TestParserParseEmptyObject(t *testing.T) {
	p := NewParser(NewOptions())
	v, err := p.Parse("{}")
	require.NoError(t, err)
	o := v.MustObject()
	require.Equal(t, 0, o.Len())
}

func TestParserParseOneElemObject(t *testing.T) {
	p := NewParser(NewOptions())
	v, err := p.Parse(`  {
		"foo"   : "bar"  }	 `)
	require.NoError(t, err)
	o := v.MustObject()
	val, found := o.Get("foo")
	require.True(t, found)
	require.Equal(t, "bar", val.MustString())
	_, found = o.Get("non-existent-key")
	require.False(t, found)
}

func TestParserParseTwoElemObject(t *testing.T) {
	p := NewParser(NewOptions())
	_, err := p.Parse(`{"foo":null,"bar":"baz"}`)
	require.NoError(t, err)
}

func TestParserParseMultiElemObject(t *testing.T) {
	p := NewParser(NewOptions())
	v, err := p.Parse(`{"foo": [1,2,3  ]  ,"bar":{},"baz":123.456}`)
	require.NoError(t, err)
	o := v.MustObject()
	val, found := o.Get("foo")
	require.True(t, found)
	require.Equal(t, value.ArrayType, val.Type())
	val, found = o.Get("bar")
	require.True(t, found)
	require.Equal(t, value.ObjectType, val.Type())
	val, found = o.Get("baz")
	require.True(t, found)
	require.Equal(t, value.NumberType, val.Type())
	require.Equal(t, `{"foo":[1,2,3],"bar":{},"baz":123.456}`, testMarshalled(t, v))
}

func TestParserParseComplexObjectKey(t *testing.T) {
	p := NewParser(NewOptions())
	str := `{"你好":1, "\\\"世界\"":2, "\\\"ሴx":"\\f大家\\\\"}`
	v, err := p.Parse(str)
	require.NoError(t, err)
	n, found := v.Get("你好")
	require.True(t, found)
	require.Equal(t, uint64(1), n.MustUnsigned().Uint64())
	n, found = v.Get(`\"世界"`)
	require.True(t, found)
	require.Equal(t, uint64(2), n.MustUnsigned().Uint64())
	s, found := v.Get("\\\"ሴx")
	require.True(t, found)
	require.Equal(t, `\f大家\\`, s.MustString())
}

func TestParserParseComplexObject(t *testing.T) {
	p := NewParser(NewOptions())
	inputs := []string{
		`{"foo":[-1.345678,[[[[[]]]],{}],"bar"],"baz":{"bbb":123}}`,
		`{"ids":[1,22,333],"attrs":{"a":{"b":{"c":[4444,"d"]}},"e":null},"ok":true}`,
	}

	for _, input := range inputs {
		v, err := p.Parse(input)
		require.NoError(t, err)
		require.Equal(t, value.ObjectType, v.Type())
		require.Equal(t, input, testMarshalled(t, v))
	}
}

func TestParserParseLargeObject(t *testing.T) {
	const itemsCount = 10000

	// Build big json object.
	var ss []string
	for i := 0; i < itemsCount; i++ {
		s := fmt.Sprintf(`"key_%d": "value_%d"`, i, i)
		ss = append(ss, s)
	}
	s := "{" + strings.Join(ss, ",") + "}"

	// Parse it.
	p := NewParser(NewOptions())
	v, err := p.Parse(s)
	require.NoError(t, err)

	// Look up object items.
	for i := 0; i < itemsCount; i++ {
		k := fmt.Sprintf("key_%d", i)
		expectedV := fmt.Sprintf("value_%d", i)
		sb, found := v.Get(k)
		require.True(t, found)
		require.Equal(t, expectedV, sb.MustString())
	}

	// Verify non-existing key returns false.
	_, found := v.Get("non-existing-key")
	require.False(t, found)
}

func TestParserParseIncompleteObject(t *testing.T) {
	p := NewParser(NewOptions())
	inputs := []string{
		" {  ",
		`{"foo"`,
		`{"foo":`,
		`{"foo":null`,
		`{"foo":null,`,
		`{"foo":null,}`,
		`{"foo":null,"bar"}`,
	}
	for _, input := range inputs {
		_, err := p.Parse(input)
		require.Error(t, err)
	}
}

func TestParseObjectKeyFilterFn(t *testing.T) {
	input := `
	{
		"foo": 123,
		"bar": [
			{
				"baz": {
					"cat": 456,
					"car": 789
				},
				"dar": ["bbb"]
			},
			666
		],
		"rad": ["usa"],
		"pat": {
			"qat": {
				"xw": {
					"woei": "oiwers",
					"234": "sdflk"
				},
				"bw": 123
			},
			"tab": {
				"enter": "return"
			},
			"bzr": 123
		}
	}
`
	filterFn := func(key string) bool { return key == "cat" || key == "qat" }
	expected := `{"foo":123,"bar":[{"baz":{"car":789},"dar":["bbb"]},666],"rad":["usa"],"pat":{"tab":{"enter":"return"},"bzr":123}}`
	opts := NewOptions().SetObjectKeyFilterFn(filterFn)
	p := NewParser(opts)
	v, err := p.Parse(input)
	require.NoError(t, err)
	require.Equal(t, expected, testMarshalled(t, v))
}

func TestParserSkipObjectValue(t *testing.T) {
	inputs := []struct {
		str string
		pos int
	}{
		{str: `"foo": "bar"}`, pos: 13},
		{str: `"foo": "bar", "baz": 123}`, pos: 25},
		{str: `"foo": "ba}r", "baz": 123}`, pos: 26},
		{str: `"foo": "ba\"}r", "baz": 123}`, pos: 28},
		{str: `"foo": "ba\\"}, "baz": 123}`, pos: 14},
		{str: `"foo": ["bar"], "baz": 123}`, pos: 27},
		{str: `"foo": {"bar": [{"baz": {"cat\"}": 123}}], "da": "ca}r"}}`, pos: 57},
	}

	for _, input := range inputs {
		p := NewParser(NewOptions()).(*parser)
		p.str = input.str
		require.NoError(t, p.skipObjectValue())
		require.Equal(t, input.pos, p.pos)
		require.Equal(t, 0, p.depth)
	}
}

func TestParserSkipObjectValueError(t *testing.T) {
	inputs := []string{
		`"foo": "bar"`,
		`"foo\}": "bar"`,
		`"foo": "bar}"`,
		`"foo": \"bar"}`,
	}

	for _, input := range inputs {
		p := NewParser(NewOptions()).(*parser)
		p.str = input
		require.Error(t, p.skipObjectValue())
	}
}

func TestParseMaximumDepth(t *testing.T) {
	input := `
	{
		"foo": 123,
		"bar": [
			{
				"baz": {
					"cat": 456,
					"car": 789
				},
				"dar": ["bbb"]
			},
			666
		],
		"rad": ["usa"],
		"pat": {
			"qat": {
				"xw": {
					"woei": "oiwers",
					"234": "sdflk"
				},
				"bw": 123
			},
			"tab": {
				"enter": "return"
			},
			"bzr": 123
		}
	}
`

	expected := []string{
		`{}`,
		`{"foo":123,"bar":[{},666],"rad":["usa"],"pat":{}}`,
		`{"foo":123,"bar":[{"baz":{},"dar":["bbb"]},666],"rad":["usa"],"pat":{"qat":{},"tab":{},"bzr":123}}`,
		`{"foo":123,"bar":[{"baz":{"cat":456,"car":789},"dar":["bbb"]},666],"rad":["usa"],"pat":{"qat":{"xw":{},"bw":123},"tab":{"enter":"return"},"bzr":123}}`,
		`{"foo":123,"bar":[{"baz":{"cat":456,"car":789},"dar":["bbb"]},666],"rad":["usa"],"pat":{"qat":{"xw":{"woei":"oiwers","234":"sdflk"},"bw":123},"tab":{"enter":"return"},"bzr":123}}`,
	}

	opts := NewOptions()
	for i := 0; i < 5; i++ {
		opts = opts.SetMaxDepth(i)
		p := NewParser(opts)
		v, err := p.Parse(input)
		require.NoError(t, err)
		require.Equal(t, expected[i], testMarshalled(t, v))
	}
}

func TestParserParseEmptyArray(t *testing.T) {
	p := NewParser(NewOptions())
	v, err := p.Parse("[]")
	require.NoError(t, err)
	a := v.MustArray()
	require.Equal(t, 0, a.Len())
}

func TestParserParseOneElemArray(t *testing.T) {
	p := NewParser(NewOptions())
	v, err := p.Parse(`   [{"bar":[  [],[[]]   ]} ]  `)
	require.NoError(t, err)
	a := v.MustArray()
	require.Equal(t, 1, a.Len())
	require.Equal(t, value.ObjectType, a.Raw()[0].Type())
	require.Equal(t, `[{"bar":[[],[[]]]}]`, testMarshalled(t, v))
}

func TestParserParseSmallArray(t *testing.T) {
	p := NewParser(NewOptions())
	_, err := p.Parse("[123,{},[]]")
	require.NoError(t, err)
}

func TestParseMultiElemArray(t *testing.T) {
	p := NewParser(NewOptions())
	v, err := p.Parse(`   [1,"foo",{"bar":[     ],"baz":""}    ,[  "x" ,	"y"   ]     ]   `)
	require.NoError(t, err)
	a := v.MustArray()
	require.Equal(t, 4, a.Len())
	require.Equal(t, value.UnsignedType, a.Raw()[0].Type())
	require.Equal(t, value.StringType, a.Raw()[1].Type())
	require.Equal(t, value.ObjectType, a.Raw()[2].Type())
	require.Equal(t, value.ArrayType, a.Raw()[3].Type())
	require.Equal(t, `[1,"foo",{"bar":[],"baz":""},["x","y"]]`, testMarshalled(t, v))
}

func TestParserParseIncompleteArray(t *testing.T) {
	p := NewParser(NewOptions())
	inputs := []string{
		"  [ ",
		"[123",
		"[123,",
		"[123,]",
		"[123,{}",
		"[123,{},]",
	}
	for _, input := range inputs {
		_, err := p.Parse(input)
		require.Error(t, err)
	}
}

func TestParserParseString(t *testing.T) {
	p := NewParser(NewOptions())
	inputs := []struct {
		str      string
		expected string
	}{
		{
			str:      `"foo\\\""`,
			expected: "foo\\\"",
		},
		{
			str:      `"foo bar"`,
			expected: "foo bar",
		},
		{
			str:      `"foobar"`,
			expected: "foobar",
		},
		{
			str:      `"{\"foo\": 123}"`,
			expected: `{"foo": 123}`,
		},
		{
			str:      `"\n\t\\foo\"bar㐣x\/\b\f\r\\"`,
			expected: "\n\t\\foo\"bar㐣x/\b\f\r\\",
		},
		{
			str:      `"x\\"`,
			expected: `x\`,
		},
		{
			str:      `"x\\y"`,
			expected: `x\y`,
		},
		{
			str:      `"\\\\\\\\"`,
			expected: `\\\\`,
		},
		{
			str:      `"\""`,
			expected: `"`,
		},
		{
			str:      `"\\"`,
			expected: `\`,
		},
		{
			str:      `"\\\""`,
			expected: `\"`,
		},
		{
			str:      `"\\\"世界"`,
			expected: `\"世界`,
		},
		{
			str:      `"你好\n\"\\世界"`,
			expected: "你好\n\"\\世界",
		},
		{
			str:      `"qሴwe"`,
			expected: "qሴwe",
		},
	}

	for _, input := range inputs {
		v, err := p.Parse(input.str)
		require.NoError(t, err)
		require.Equal(t, input.expected, v.MustString())
	}
}

func TestParserParseStringError(t *testing.T) {
	p := NewParser(NewOptions())
	inputs := []string{
		`"\"`,
		`"unclosed string`,
		`"foo\qwe"`,
		`"foo\\\\\"大家\n\r\t`,
		`"\"x\uyz\""`,
		`"\u12\"你好"`,
	}

	for _, input := range inputs {
		_, err := p.Parse(input)
		require.Error(t, err)
	}
}

func TestParserParseIncompleteString(t *testing.T) {
	p := NewParser(NewOptions())
	inputs := []string{
		`  "foo`,
		`"foo\`,
		`"foo\"`,
		`"foo\\\"`,
		`"foo'`,
		`"foo'bar'`,
	}
	for _, input := range inputs {
		_, err := p.Parse(input)
		require.Error(t, err)
	}
}

func TestParserParseNull(t *testing.T) {
	p := NewParser(NewOptions())
	v, err := p.Parse("null")
	require.NoError(t, err)
	require.Equal(t, value.NullType, v.Type())
}

func TestParserParseTrue(t *testing.T) {
	p := NewParser(NewOptions())
	v, err := p.Parse("true")
	require.NoError(t, err)
	require.Equal(t, value.BoolType, v.Type())
	require.Equal(t, true, v.MustBool())
}

func TestParserParseFalse(t *testing.T) {
	p := NewParser(NewOptions())
	v, err := p.Parse("false")
	require.NoError(t, err)
	require.Equal(t, value.BoolType, v.Type())
	require.Equal(t, false, v.MustBool())
}

func TestParserParseUnsignedInteger(t *testing.T) {
	p := NewParser(NewOptions())
	inputs := []struct {
		str      string
		expected uint64
	}{
		{str: "0", expected: 0},
		{str: "12345", expected: 12345},
		{str: "9223372036854775806", expected: math.MaxInt64 - 1},
		{str: "9223372036854775808", expected: uint64(math.MaxInt64) + 1},
		{str: "18446744073709551615", expected: math.MaxUint64},
	}
	for _, input := range inputs {
		v, err := p.Parse(input.str)
		require.NoError(t, err)
		require.Equal(t, value.UnsignedType, v.Type())
		require.Equal(t, input.expected, v.MustUnsigned().Uint64())
		require.Equal(t, input.str, testMarshalled(t, v))
	}
}

func TestParserParseUnsignedIntegerOverflowsToFloat(t *testing.T) {
	// Integer literals exceeding the uint64 range fall back to the float
	// representation.
	p := NewParser(NewOptions())
	v, err := p.Parse("18446744073709551616")
	require.NoError(t, err)
	require.Equal(t, value.NumberType, v.Type())
	require.Equal(t, float64(18446744073709551616), v.MustNumber())
}

func TestParserParseBoundedUnsigned(t *testing.T) {
	opts := NewOptions().SetUnsignedFactoryFn(bound.Factory)
	p := NewParser(opts)

	// Values below the bound parse and round-trip.
	v, err := p.Parse("9223372036854775806")
	require.NoError(t, err)
	require.Equal(t, value.UnsignedType, v.Type())
	u, err := bound.FromValue(v)
	require.NoError(t, err)
	require.Equal(t, uint64(math.MaxInt64-1), u.Uint64())

	// Values at or above the bound fail at parse time.
	_, err = p.Parse("9223372036854775808")
	require.Error(t, err)
	require.True(t, bound.IsOutOfRange(err))
	require.True(t, strings.Contains(err.Error(), "Value 9223372036854775808 out of bound."))
}

func TestParserParseBoundedUnsignedInObject(t *testing.T) {
	opts := NewOptions().SetUnsignedFactoryFn(bound.Factory)
	p := NewParser(opts)

	v, err := p.Parse(`{"in_bound": 9223372036854775806}`)
	require.NoError(t, err)
	val, found := v.Get("in_bound")
	require.True(t, found)
	require.Equal(t, uint64(math.MaxInt64-1), val.MustUnsigned().Uint64())

	_, err = p.Parse(`{"out_of_bound": 9223372036854775808}`)
	require.Error(t, err)
	require.True(t, bound.IsOutOfRange(err))
	require.True(t, strings.Contains(err.Error(), "Value 9223372036854775808 out of bound."))
}

func TestParserParseNegativeInteger(t *testing.T) {
	p := NewParser(NewOptions())
	v, err := p.Parse("-123")
	require.NoError(t, err)
	require.Equal(t, value.NumberType, v.Type())
	require.Equal(t, float64(-123), v.MustNumber())
}

func TestParserParseSmallFloat(t *testing.T) {
	p := NewParser(NewOptions())
	v, err := p.Parse("-12.345")
	require.NoError(t, err)
	n, err := v.Number()
	require.NoError(t, err)
	require.Equal(t, -12.345, n)
}

func TestParserParseLargeFloat(t *testing.T) {
	p := NewParser(NewOptions())
	v, err := p.Parse("-2134.453E+43")
	require.NoError(t, err)
	_, err = v.Number()
	require.NoError(t, err)
}

func TestParserParseNumber(t *testing.T) {
	p := NewParser(NewOptions()).(*parser)
	inputs := []struct {
		str      string
		expected float64
		tail     string
	}{
		{str: "1.5", expected: 1.5, tail: ""},
		{str: "-123", expected: -123, tail: ""},
		{str: "-12.345 aa", expected: -12.345, tail: " aa"},
		{str: "0.25e2,", expected: 25, tail: ","},
	}

	for _, input := range inputs {
		p.reset()
		p.str = input.str
		v, err := p.parseNumber()
		require.NoError(t, err)
		require.Equal(t, value.NumberType, v.Type())
		require.Equal(t, input.expected, v.MustNumber())
		require.Equal(t, input.tail, p.str[p.pos:])
	}
}

func TestParserParseNumberError(t *testing.T) {
	p := NewParser(NewOptions()).(*parser)
	inputs := []string{
		"xyz",
		" ",
		"[",
		",",
		"{",
		"\"",
	}
	for _, input := range inputs {
		p.reset()
		p.str = input
		_, err := p.parseNumber()
		require.Error(t, err)
	}
}

func testMarshalled(t *testing.T, v *value.Value) string {
	marshalled, err := v.MarshalTo(nil)
	require.NoError(t, err)
	return string(marshalled)
}
