package main

import (
	"fmt"
	"io"
	"time"

	"github.com/go-python/gpython/py"
	"github.com/go-python/gpython/repl"
	pycli "github.com/go-python/gpython/repl/cli"
	"github.com/plan-systems/klog"

	_ "github.com/go-python/gpython/stdlib"
	_ "github.com/mankinskin/seqraph/pyseq"
)

const replStartup = "import _seqraph\nfrom _seqraph import *\n"

// runPython runs the script at pathname, or an interactive REPL with _seqraph imported if pathname is empty.
// A script's elapsed time is reported to out once it completes.
func runPython(out io.Writer, pathname string) error {
	ctx := py.NewContext(py.DefaultContextOpts())
	defer func() {
		ctx.Close()
		<-ctx.Done()
	}()

	err := runInContext(ctx, out, pathname)
	if err != nil {
		py.TracebackDump(err)
	}
	return err
}

func runInContext(ctx py.Context, out io.Writer, pathname string) error {
	if pathname == "" {
		replCtx := repl.New(ctx)
		if _, err := py.RunSrc(ctx, replStartup, "<startup>", replCtx.Module); err != nil {
			return err
		}
		pycli.RunREPL(replCtx)
		return nil
	}

	klog.V(1).Infof("running %q", pathname)
	start := time.Now()
	if _, err := py.RunFile(ctx, pathname, py.CompileOpts{}, nil); err != nil {
		return err
	}
	fmt.Fprintf(out, "%s: done in %v\n", pathname, time.Since(start).Round(time.Millisecond))
	return nil
}
