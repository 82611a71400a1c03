package main

import (
	"bufio"
	"bytes"
	"flag"
	"fmt"
	"io"
	"log"
	"os"
	"os/exec"
	"regexp"
	"strings"
	"time"

	"golang.org/x/net/context"
	"golang.org/x/sync/errgroup"
)

// generator writes builder step wrappers for one test case type.
type generator struct {
	typeName string
	infix    string
	args     []string

	src interface {
		io.ReadCloser
		Name() string
	}
	dst io.WriteCloser
}

func main() {
	gen := generator{src: os.Stdin, dst: os.Stdout}
	flag.StringVar(&gen.typeName, "type", "sessionTestCase", "test case builder type")
	flag.StringVar(&gen.infix, "infix", "Session", "name inserted after the expect or with prefix")
	flag.Parse()
	gen.args = flag.Args()
	if err := gen.open(); err != nil {
		log.Fatalln(err)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := gen.run(ctx); err != nil {
		log.Fatalln(err)
	}
}

// open replaces stdin and stdout with the optional input and output file
// arguments.
func (gen *generator) open() error {
	if len(gen.args) > 0 {
		f, err := os.Open(gen.args[0])
		if err != nil {
			return fmt.Errorf("failed to open input: %w", err)
		}
		gen.src = f
	}
	if len(gen.args) > 1 {
		f, err := os.Create(gen.args[1])
		if err != nil {
			return fmt.Errorf("failed to create output: %w", err)
		}
		gen.dst = f
	}
	return nil
}

// run pipes generated source through goimports into the output.
func (gen *generator) run(ctx context.Context) error {
	goimports := exec.CommandContext(ctx, "goimports")
	goimports.Stdout = gen.dst
	goimports.Stderr = os.Stderr
	pipe, err := goimports.StdinPipe()
	if err != nil {
		return err
	}

	eg, ctx := errgroup.WithContext(ctx)
	eg.Go(func() error {
		defer gen.dst.Close()
		if err := goimports.Run(); err != nil {
			return fmt.Errorf("goimports run failed: %w", err)
		}
		return nil
	})
	eg.Go(func() (rerr error) {
		defer func() {
			if cerr := gen.src.Close(); rerr == nil {
				rerr = cerr
			}
			if cerr := pipe.Close(); rerr == nil {
				rerr = cerr
			}
		}()
		return gen.generate(ctx, pipe)
	})
	return eg.Wait()
}

// builderMethod matches a chainable builder method that takes arguments,
// capturing its prefix, the rest of its name, and its parameter list.
func builderMethod(typeName string) *regexp.Regexp {
	return regexp.MustCompile(fmt.Sprintf(
		`^func \(\w+ %[1]s\) (expect|with)(\w+)\((.+?)\) %[1]s \{`,
		regexp.QuoteMeta(typeName)))
}

func (gen *generator) generate(ctx context.Context, out io.Writer) error {
	method := builderMethod(gen.typeName)

	var buf bytes.Buffer
	buf.Grow(1024)
	fmt.Fprintf(&buf, "package main\n\n// @generated from %v\n\n", gen.src.Name())
	if len(gen.args) >= 2 {
		fmt.Fprintf(&buf, "//go:generate go run scripts/gen_session_expects.go -- %v\n\n", strings.Join(gen.args, " "))
	}

	sc := bufio.NewScanner(gen.src)
	for sc.Scan() {
		if match := method.FindSubmatch(sc.Bytes()); len(match) > 0 {
			gen.writeWrapper(&buf, match[1], match[2], match[3])
		}
		if buf.Len() > 0 {
			if _, err := buf.WriteTo(out); err != nil {
				return err
			}
		}
		if err := ctx.Err(); err != nil {
			return err
		}
	}
	return sc.Err()
}

// writeWrapper writes a free function that returns a builder step, so that
// cases can be composed with apply.
func (gen *generator) writeWrapper(buf *bytes.Buffer, prefix, what, params []byte) {
	fmt.Fprintf(buf, "func %s%s%s(%s) func(%s) %s {\n", prefix, gen.infix, what, params, gen.typeName, gen.typeName)
	fmt.Fprintf(buf, "\treturn func(tc %s) %s {\n", gen.typeName, gen.typeName)
	fmt.Fprintf(buf, "\t\treturn tc.%s%s(", prefix, what)
	for i, param := range bytes.Split(params, []byte(",")) {
		if i > 0 {
			buf.WriteString(", ")
		}
		fields := bytes.Fields(param)
		buf.Write(fields[0])
		if len(fields) > 1 && bytes.HasPrefix(fields[1], []byte("...")) {
			buf.WriteString("...")
		}
	}
	buf.WriteString(")\n\t}\n}\n\n")
}
