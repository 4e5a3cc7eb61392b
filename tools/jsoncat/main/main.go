// This tool parses newline-delimited JSON documents and prints them back in
// canonical form, optionally enforcing the bounded unsigned numeric kind.
package main

import (
	"bufio"
	"flag"
	"fmt"
	"os"
	"strings"

	"github.com/win32asm/json/bound"
	"github.com/win32asm/json/document/field"
	"github.com/win32asm/json/parser/json"
	"github.com/win32asm/json/parser/json/value"

	xerrors "github.com/m3db/m3x/errors"
	"github.com/m3db/m3x/log"
)

var (
	inputFile        = flag.String("inputFile", "", "input file containing newline-delimited JSON documents")
	maxParseDepth    = flag.Int("maxParseDepth", 8, "maximum parse depth")
	excludeKeySuffix = flag.String("excludeKeySuffix", "", "excluding keys with given suffix")
	bounded          = flag.Bool("bounded", false, "restrict unsigned integers to the signed 64-bit range")
	printFields      = flag.Bool("printFields", false, "print flattened fields instead of canonical JSON")

	logger = log.SimpleLogger
)

func main() {
	flag.Parse()

	if len(*inputFile) == 0 {
		flag.Usage()
		os.Exit(1)
	}

	numDocs, err := catDocuments(*inputFile)
	if err != nil {
		logger.Fatalf("error processing %s: %v", *inputFile, err)
	}
	logger.Infof("processed %d documents from %s", numDocs, *inputFile)
}

func catDocuments(fname string) (int, error) {
	f, err := os.Open(fname)
	if err != nil {
		return 0, err
	}
	defer f.Close()

	var (
		parserOpts = parserOptions()
		scanner    = bufio.NewScanner(f)
		multiErr   xerrors.MultiError
		numDocs    int
		lineNum    int
	)
	for scanner.Scan() {
		lineNum++
		line := scanner.Text()
		if len(strings.TrimSpace(line)) == 0 {
			continue
		}
		p := json.NewParser(parserOpts)
		v, err := p.Parse(line)
		if err != nil {
			multiErr = multiErr.Add(fmt.Errorf("line %d: %v", lineNum, err))
			continue
		}
		if err = printDocument(v); err != nil {
			multiErr = multiErr.Add(fmt.Errorf("line %d: %v", lineNum, err))
			continue
		}
		numDocs++
	}
	if err := scanner.Err(); err != nil {
		multiErr = multiErr.Add(err)
	}
	return numDocs, multiErr.FinalError()
}

func parserOptions() *json.Options {
	opts := json.NewOptions().SetMaxDepth(*maxParseDepth)
	if len(*excludeKeySuffix) > 0 {
		filterFn := func(key string) bool { return strings.HasSuffix(key, *excludeKeySuffix) }
		opts = opts.SetObjectKeyFilterFn(filterFn)
	}
	if *bounded {
		opts = opts.SetUnsignedFactoryFn(bound.Factory)
	}
	return opts
}

func printDocument(v *value.Value) error {
	if *printFields {
		fieldIter := value.NewFieldIterator(v)
		defer fieldIter.Close()
		for fieldIter.Next() {
			curr := fieldIter.Current()
			fmt.Printf("%s=%s\n", strings.Join(curr.Path, "."), formatValue(curr.Value))
		}
		return nil
	}
	marshalled, err := v.MarshalTo(nil)
	if err != nil {
		return err
	}
	fmt.Println(string(marshalled))
	return nil
}

func formatValue(v field.ValueUnion) string {
	switch v.Type {
	case field.NullType:
		return "null"
	case field.BoolType:
		return fmt.Sprintf("%t", v.BoolVal)
	case field.IntType:
		return fmt.Sprintf("%d", v.IntVal)
	case field.DoubleType:
		return fmt.Sprintf("%v", v.DoubleVal)
	case field.StringType:
		return v.StringVal
	default:
		return fmt.Sprintf("<unknown type %v>", v.Type)
	}
}
