// Command wlgen generates Go bindings from Wayland protocol XML files.
//
// A single file can be generated with flags:
//
//	wlgen -client -xml wayland.xml -out protocol.go -pkg wl -prefix wl_
//
// Several files can be generated at once from a YAML configuration:
//
//	jobs:
//	  - xml: protocol/wayland-drm.xml
//	    out: drm/protocol.go
//	    package: drm
//	    prefix: wl_
//	    client: true
//	    imports:
//	      - name: wl
//	        path: deedles.dev/wayland/client
//	        prefix: wl_
//
// Output is only written if it differs from what is already there.
package main

import (
	"bytes"
	"errors"
	"flag"
	"fmt"
	"io/fs"
	"log"
	"os"
	"runtime"

	"deedles.dev/wayland/protocol"
	"golang.org/x/sync/errgroup"
)

// Run generates the output file for the job.
func (job Job) Run() error {
	proto, err := protocol.ParseFile(job.XML)
	if err != nil {
		return err
	}
	err = proto.Validate()
	if err != nil {
		return fmt.Errorf("validate %v: %w", job.XML, err)
	}

	out, err := Generate(job, proto)
	if err != nil {
		return fmt.Errorf("generate %v: %w", job.XML, err)
	}

	return writeIfChanged(job.Out, out)
}

func writeIfChanged(path string, data []byte) error {
	old, err := os.ReadFile(path)
	if (err != nil) && !errors.Is(err, fs.ErrNotExist) {
		return err
	}
	if bytes.Equal(old, data) {
		return nil
	}

	return os.WriteFile(path, data, 0644)
}

func main() {
	config := flag.String("config", "", "YAML file listing several jobs")
	var job Job
	flag.StringVar(&job.XML, "xml", "", "protocol XML file")
	flag.StringVar(&job.Out, "out", "", "output file (default <xml file>.go)")
	flag.StringVar(&job.Package, "pkg", "wl", "output package name")
	flag.StringVar(&job.Prefix, "prefix", "wl_", "interface prefix name to strip")
	flag.BoolVar(&job.Client, "client", false, "generate client-side bindings")
	flag.Func("import", "resolve interfaces against a package, as name=path:prefix (repeatable)", func(v string) error {
		imp, err := ParseImport(v)
		if err != nil {
			return err
		}
		job.Imports = append(job.Imports, imp)
		return nil
	})
	flag.Parse()

	jobs := []Job{job}
	switch {
	case *config != "":
		c, err := LoadConfig(*config)
		if err != nil {
			log.Fatalf("load config: %v", err)
		}
		jobs = c.Jobs
	case job.XML == "":
		flag.Usage()
		os.Exit(2)
	default:
		jobs[0].setDefaults()
	}

	var eg errgroup.Group
	eg.SetLimit(runtime.GOMAXPROCS(0))
	for _, job := range jobs {
		eg.Go(func() error {
			err := job.Run()
			if err != nil {
				return err
			}
			log.Printf("generated %v", job.Out)
			return nil
		})
	}

	err := eg.Wait()
	if err != nil {
		log.Fatalf("%v", err)
	}
}
