// Command stitchplan computes a stitch plan for a rig file offline and
// prints, verifies, plots or publishes it.
package main

import (
	"context"
	"encoding/json"
	"errors"
	"flag"
	"fmt"
	"io"
	"log"
	"net/http"
	"net/url"
	"os"
	"time"

	"github.com/banshee-data/surround.view/internal/config"
	"github.com/banshee-data/surround.view/internal/httputil"
	"github.com/banshee-data/surround.view/internal/monitoring"
	"github.com/banshee-data/surround.view/internal/report"
	"github.com/banshee-data/surround.view/internal/security"
	"github.com/banshee-data/surround.view/internal/stitch"
	"github.com/banshee-data/surround.view/internal/visual"
)

const usage = `Usage: stitchplan [-config rig.json] [-v] <command> [flags]

Commands:
  plan                 print the plan as JSON
  verify               check that copy areas and overlaps tile the output
  summary              print plan statistics as JSON
  plot -o layout.png   write a PNG layout chart
  html -o layout.html  write an interactive HTML chart
  mask -o mask.png [-w 720]
                       write the output ownership mask, scaled to -w columns
  push -server URL     upload the rig to a planner service and store its plan
`

// errUsage signals that usage has been printed.
var errUsage = errors.New("usage")

type cli struct {
	stdout io.Writer
	stderr io.Writer
	client httputil.HTTPClient
}

func main() {
	c := &cli{stdout: os.Stdout, stderr: os.Stderr, client: &http.Client{Timeout: 30 * time.Second}}
	if err := c.run(os.Args[1:]); err != nil {
		if errors.Is(err, errUsage) {
			os.Exit(2)
		}
		log.Fatalf("stitchplan: %v", err)
	}
}

func (c *cli) run(args []string) error {
	fs := flag.NewFlagSet("stitchplan", flag.ContinueOnError)
	fs.SetOutput(c.stderr)
	fs.Usage = func() { fmt.Fprint(c.stderr, usage) }
	configFile := fs.String("config", config.DefaultConfigPath, "Rig configuration JSON file")
	verbose := fs.Bool("v", false, "Log planner stages")
	if err := fs.Parse(args); err != nil {
		return errUsage
	}
	if fs.NArg() < 1 {
		fs.Usage()
		return errUsage
	}
	if !*verbose {
		monitoring.SetLogger(nil)
	}

	rig, err := config.LoadRigConfig(*configFile)
	if err != nil {
		return err
	}

	cmd, rest := fs.Arg(0), fs.Args()[1:]
	if cmd == "push" {
		return c.push(rig, rest)
	}

	s, err := rig.NewStitcher()
	if err != nil {
		return err
	}
	plan, err := s.Plan()
	if err != nil {
		return err
	}

	switch cmd {
	case "plan":
		return c.writeJSON(plan)
	case "verify":
		if err := stitch.VerifyTiling(plan.OutputWidth, plan.CopyAreas, plan.Overlaps); err != nil {
			return err
		}
		fmt.Fprintf(c.stdout, "ok: %d copy areas and %d overlaps tile %d columns\n",
			len(plan.CopyAreas), len(plan.Overlaps), plan.OutputWidth)
		return nil
	case "summary":
		sum, err := report.Summarize(plan, rig.CameraInfos())
		if err != nil {
			return err
		}
		return c.writeJSON(sum)
	case "plot":
		out, err := c.outputFlag(cmd, rest, "layout.png")
		if err != nil {
			return err
		}
		if err := visual.SaveLayoutPNG(plan, out); err != nil {
			return err
		}
		fmt.Fprintf(c.stdout, "wrote %s\n", out)
		return nil
	case "html":
		out, err := c.outputFlag(cmd, rest, "layout.html")
		if err != nil {
			return err
		}
		f, err := os.Create(out)
		if err != nil {
			return fmt.Errorf("failed to create %s: %w", out, err)
		}
		if err := visual.RenderLayoutHTML(plan, f); err != nil {
			f.Close()
			return err
		}
		if err := f.Close(); err != nil {
			return err
		}
		fmt.Fprintf(c.stdout, "wrote %s\n", out)
		return nil
	case "mask":
		mfs := flag.NewFlagSet(cmd, flag.ContinueOnError)
		mfs.SetOutput(c.stderr)
		out := mfs.String("o", "mask.png", "Output file")
		maxWidth := mfs.Int("w", 720, "Maximum mask width in pixels (0 keeps full size)")
		if err := mfs.Parse(rest); err != nil {
			return errUsage
		}
		if err := security.ValidateOutputPath(*out); err != nil {
			return err
		}
		f, err := os.Create(*out)
		if err != nil {
			return fmt.Errorf("failed to create %s: %w", *out, err)
		}
		if err := visual.WriteOwnershipPNG(plan, f, *maxWidth); err != nil {
			f.Close()
			return err
		}
		if err := f.Close(); err != nil {
			return err
		}
		fmt.Fprintf(c.stdout, "wrote %s\n", *out)
		return nil
	default:
		fmt.Fprintf(c.stderr, "unknown command %q\n\n", cmd)
		fs.Usage()
		return errUsage
	}
}

func (c *cli) outputFlag(cmd string, args []string, def string) (string, error) {
	fs := flag.NewFlagSet(cmd, flag.ContinueOnError)
	fs.SetOutput(c.stderr)
	out := fs.String("o", def, "Output file")
	if err := fs.Parse(args); err != nil {
		return "", errUsage
	}
	if err := security.ValidateOutputPath(*out); err != nil {
		return "", err
	}
	return *out, nil
}

// push replaces the rig of a running planner service and asks it to store
// the resulting plan.
func (c *cli) push(rig *config.RigConfig, args []string) error {
	fs := flag.NewFlagSet("push", flag.ContinueOnError)
	fs.SetOutput(c.stderr)
	server := fs.String("server", "http://localhost:8080", "Planner service URL")
	name := fs.String("name", "", "Rig name on the service (default: keep current)")
	if err := fs.Parse(args); err != nil {
		return errUsage
	}

	ctx, cancel := context.WithTimeout(context.Background(), time.Minute)
	defer cancel()

	client := httputil.NewJSONClient(*server, c.client)
	path := "/api/rig"
	if *name != "" {
		path += "?name=" + url.QueryEscape(*name)
	}

	var plan stitch.Plan
	if err := client.Do(ctx, http.MethodPut, path, rig, &plan); err != nil {
		return fmt.Errorf("replace rig: %w", err)
	}
	var created struct {
		ID      string `json:"id"`
		RigName string `json:"rig_name"`
	}
	if err := client.Do(ctx, http.MethodPost, "/api/plans", nil, &created); err != nil {
		return fmt.Errorf("store plan: %w", err)
	}
	fmt.Fprintf(c.stdout, "stored plan %s for rig %s (%d copy areas)\n", created.ID, created.RigName, len(plan.CopyAreas))
	return nil
}

func (c *cli) writeJSON(v interface{}) error {
	enc := json.NewEncoder(c.stdout)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}
