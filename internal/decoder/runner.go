// ABOUTME: External decoder invocation
// ABOUTME: Runs iamfdec once per test case and reports success without raising
package decoder

import (
	"bytes"
	"context"
	"log"
	"os/exec"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/iamf-tools/iamf-conformance/internal/metadata"
)

// Options controls subprocess side channels
type Options struct {
	// CaptureOutput collects stdout and stderr of the decoder. When false
	// both streams are discarded.
	CaptureOutput bool
}

// Outcome is the result of one decoder invocation
type Outcome struct {
	OK      bool
	Command string
	Output  []byte
	Err     error
}

// Runner invokes the decoder binary at Path
type Runner struct {
	Path      string
	InputDir  string
	OutputDir string
	Options   Options
}

// New creates a runner reading <inputDir>/<prefix>.iamf and writing generated
// files to outputDir
func New(path, inputDir, outputDir string, opts Options) *Runner {
	return &Runner{
		Path:      path,
		InputDir:  inputDir,
		OutputDir: outputDir,
		Options:   opts,
	}
}

// Args builds the decoder argument vector for tc. It returns false when tc
// has no layout token.
func (r *Runner) Args(tc metadata.TestCase) ([]string, bool) {
	if tc.LayoutToken == "" {
		return nil, false
	}
	return []string{
		"-i0",
		"-mp", strconv.FormatUint(uint64(tc.MixPresentationID), 10),
		"-s" + tc.LayoutToken,
		"-o3", filepath.Join(r.OutputDir, tc.GeneratedFile),
		"-d", strconv.Itoa(tc.BitDepth),
		"-r", strconv.Itoa(tc.SampleRate),
		"-disable_limiter",
		filepath.Join(r.InputDir, tc.TestPrefix+".iamf"),
	}, true
}

// Run decodes tc and waits for the decoder to exit. A non-zero exit or a
// failure to start the process yields OK=false; Run never panics on decoder
// failure. There is no timeout: cancelling ctx is the only way to stop a
// hung decoder.
func (r *Runner) Run(ctx context.Context, tc metadata.TestCase) Outcome {
	args, ok := r.Args(tc)
	if !ok {
		return Outcome{OK: false}
	}

	cmdStr := strings.Join(append([]string{r.Path}, args...), " ")
	log.Printf("Running: %s", cmdStr)

	cmd := exec.CommandContext(ctx, r.Path, args...)
	var output bytes.Buffer
	if r.Options.CaptureOutput {
		cmd.Stdout = &output
		cmd.Stderr = &output
	}

	err := cmd.Run()
	outcome := Outcome{
		OK:      err == nil,
		Command: cmdStr,
		Output:  output.Bytes(),
		Err:     err,
	}
	if r.Options.CaptureOutput && output.Len() > 0 {
		log.Printf("Decoder output for %s:\n%s", tc, output.String())
	}
	return outcome
}
