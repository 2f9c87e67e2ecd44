// Command ngci runs the rs274ngc interpreter over a program file or
// stdin, driving either a plain NGC-text printer or a live GRBL serial
// link.
package main

import (
	"bufio"
	"fmt"
	"os"

	getopt "github.com/pborman/getopt/v2"

	"github.com/kennylevinsen/rs274ngc/cmi"
	"github.com/kennylevinsen/rs274ngc/interp"
	"github.com/kennylevinsen/rs274ngc/nglog"
	"github.com/kennylevinsen/rs274ngc/paramfile"
)

func main() {
	optProgram := getopt.StringLong("program", 'p', "", "NGC program file (default: stdin)")
	optVars := getopt.StringLong("vars", 'v', paramfile.DefaultName, "Parameter file")
	optPort := getopt.StringLong("port", 0, "", "GRBL serial port (default: print NGC text to stdout)")
	optHelp := getopt.BoolLong("help", 'h', "Help")
	getopt.Parse()

	if *optHelp {
		getopt.Usage()
		os.Exit(0)
	}

	values, perr := paramfile.Load(*optVars)
	if perr != nil {
		nglog.Errorf("loading %s: %v", *optVars, perr)
		os.Exit(1)
	}

	var sink cmi.Interface
	var grbl *cmi.GrblDriver
	if *optPort != "" {
		var err error
		grbl, err = cmi.OpenGrbl(*optPort)
		if err != nil {
			nglog.Errorf("opening %s: %v", *optPort, err)
			os.Exit(1)
		}
		sink = grbl
	} else {
		sink = &cmi.Printer{W: os.Stdout, Precision: 4}
	}

	ip := interp.New(sink)
	ip.Params = interp.NewParamsFrom(values)
	ip.Synch()

	registerSignals(func() { saveAndExit(ip, *optVars, 0) })

	in := os.Stdin
	if *optProgram != "" {
		f, err := os.Open(*optProgram)
		if err != nil {
			nglog.Errorf("opening %s: %v", *optProgram, err)
			os.Exit(1)
		}
		defer f.Close()
		in = f
	}

	scanner := bufio.NewScanner(in)
	for scanner.Scan() {
		line := scanner.Text()
		bd, err := ip.Read(line)
		if err != nil {
			fmt.Fprintf(os.Stderr, "%s\n", err)
			continue
		}
		if bd {
			continue
		}
		result, err := ip.Execute()
		if err != nil {
			fmt.Fprintf(os.Stderr, "%s\n", err)
			continue
		}
		if result == interp.Exit {
			break
		}
	}
	if err := scanner.Err(); err != nil {
		nglog.Errorf("reading program: %v", err)
	}

	saveAndExit(ip, *optVars, 0)
}

func saveAndExit(ip *interp.Interp, varsPath string, code int) {
	if err := paramfile.Save(varsPath, ip.Params.Snapshot()); err != nil {
		nglog.Errorf("saving %s: %v", varsPath, err)
	}
	nglog.Flush()
	os.Exit(code)
}
