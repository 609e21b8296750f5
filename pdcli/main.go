// Package pdcli implements the playdiagram command.
package pdcli

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"path/filepath"
	"strings"
	"time"

	"cdr.dev/slog"
	"github.com/spf13/pflag"
	"oss.terrastruct.com/xdefer"

	"github.com/coachboard/playdiagram/lib/background"
	"github.com/coachboard/playdiagram/lib/log"
	timelib "github.com/coachboard/playdiagram/lib/time"
	"github.com/coachboard/playdiagram/lib/version"
	"github.com/coachboard/playdiagram/lib/xbrowser"
	"github.com/coachboard/playdiagram/lib/xmain"
	"github.com/coachboard/playdiagram/pdlib"
	"github.com/coachboard/playdiagram/pdpalette"
	"github.com/coachboard/playdiagram/pdrenderers/pdsvg"
	"github.com/coachboard/playdiagram/pdtarget"
)

type outputFormat string

const (
	formatSVG  outputFormat = "svg"
	formatJSON outputFormat = "json"
)

// options is everything parsed from flags that one compile needs.
type options struct {
	compile     pdlib.CompileOptions
	svg         pdsvg.RenderOpts
	format      outputFormat
	inputPath   string
	outputPath  string
	palettePath string
}

func Run(ctx context.Context, ms *xmain.State) (err error) {
	ctx = log.WithDefault(ctx)
	// These should be kept up-to-date with help.go
	modeFlag := ms.Opts.String("PD_MODE", "mode", "m", string(pdtarget.ModeCompactPreview), "rendering mode: compact-preview or full-editable")
	wideFlag, err := ms.Opts.Bool("PD_WIDE", "wide", "", false, "use the wide card layout where glyphs are drawn larger")
	if err != nil {
		return err
	}
	fixedViewportFlag, err := ms.Opts.Bool("PD_FIXED_VIEWPORT", "fixed-viewport", "", false, "use the whole field canvas as the viewport instead of fitting the content")
	if err != nil {
		return err
	}
	formatFlag := ms.Opts.String("PD_FORMAT", "format", "f", "", "output format: svg or json. Defaults to the output file extension, else svg")
	selectFlag := ms.Opts.String("PD_SELECT", "select", "s", "", "jq expression picking or reshaping elements before rendering, e.g. '.[] | select(.type == \"poly\")'")
	strictFlag, err := ms.Opts.Bool("PD_STRICT", "strict", "", false, "fail on schema issues instead of warning about them")
	if err != nil {
		return err
	}
	backgroundFlag := ms.Opts.String("PD_BACKGROUND", "background", "b", "", "background color, 'none', or an image URL stretched over the canvas")
	paletteFlag := ms.Opts.String("PD_PALETTE", "palette", "p", "", "path to a JSON file with positionColors, positionNames and positionAbbreviations")
	noXMLTagFlag, err := ms.Opts.Bool("PD_NO_XML_TAG", "no-xml-tag", "", false, "omit XML tag (<?xml ...?>) from output SVG files. Useful when embedding in HTML")
	if err != nil {
		return err
	}
	watchFlag, err := ms.Opts.Bool("PD_WATCH", "watch", "w", false, "watch the input for changes and recompile")
	if err != nil {
		return err
	}
	openFlag, err := ms.Opts.Bool("PD_OPEN", "open", "o", false, "open the output once compiled. Set $BROWSER to choose the program, or 0 to disable")
	if err != nil {
		return err
	}
	debugFlag, err := ms.Opts.Bool("PD_DEBUG", "debug", "d", false, "print debug logs.")
	if err != nil {
		return err
	}
	versionFlag, err := ms.Opts.Bool("", "version", "v", false, "get the version")
	if err != nil {
		return err
	}

	err = ms.Opts.Flags.Parse(ms.Opts.Args)
	if !errors.Is(err, pflag.ErrHelp) && err != nil {
		return xmain.UsageErrorf("failed to parse flags: %v", err)
	}
	if errors.Is(err, pflag.ErrHelp) {
		help(ms)
		return nil
	}

	if len(ms.Opts.Flags.Args()) > 0 {
		switch ms.Opts.Flags.Arg(0) {
		case "validate":
			return validateCmd(ctx, ms)
		case "version":
			if len(ms.Opts.Flags.Args()) > 1 {
				return xmain.UsageErrorf("version subcommand accepts no arguments")
			}
			fmt.Fprintln(ms.Stdout, version.Version)
			return nil
		}
	}

	if *debugFlag {
		ctx = log.Leveled(ctx, slog.LevelDebug)
	}
	if *versionFlag {
		fmt.Fprintln(ms.Stdout, version.Version)
		return nil
	}

	if len(ms.Opts.Flags.Args()) == 0 {
		help(ms)
		return nil
	}
	if len(ms.Opts.Flags.Args()) > 2 {
		return xmain.UsageErrorf("too many arguments passed")
	}

	opts := &options{
		inputPath: ms.Opts.Flags.Arg(0),
	}
	if len(ms.Opts.Flags.Args()) == 2 {
		opts.outputPath = ms.Opts.Flags.Arg(1)
	} else {
		if opts.inputPath == "-" {
			opts.outputPath = "-"
		} else {
			opts.outputPath = renameExt(opts.inputPath, ".svg")
		}
	}
	if opts.inputPath != "-" {
		opts.inputPath = ms.AbsPath(opts.inputPath)
	}
	if opts.outputPath != "-" {
		opts.outputPath = ms.AbsPath(opts.outputPath)
	}
	if opts.inputPath == opts.outputPath && opts.inputPath != "-" {
		return xmain.UsageErrorf("input and output paths must differ: %s", ms.HumanPath(opts.inputPath))
	}

	opts.format, err = parseFormat(*formatFlag, opts.outputPath)
	if err != nil {
		return err
	}

	mode := pdtarget.Mode(*modeFlag)
	if mode != pdtarget.ModeCompactPreview && mode != pdtarget.ModeFullEditable {
		return xmain.UsageErrorf("--mode must be %s or %s, found %q", pdtarget.ModeCompactPreview, pdtarget.ModeFullEditable, *modeFlag)
	}
	renderOpts := &pdtarget.RenderOptions{
		Mode:          mode,
		FixedViewport: *fixedViewportFlag,
		WidthScale:    pdtarget.WidthDefault,
	}
	if *wideFlag {
		renderOpts.WidthScale = pdtarget.WidthWide
	}
	opts.compile = pdlib.CompileOptions{
		Render: renderOpts,
		Select: *selectFlag,
		Strict: *strictFlag,
	}
	opts.svg = pdsvg.RenderOpts{
		NoXMLTag: *noXMLTagFlag,
	}
	if isHref(*backgroundFlag) {
		opts.svg.BackgroundHref = *backgroundFlag
	} else {
		opts.svg.Background = *backgroundFlag
	}
	opts.palettePath = *paletteFlag

	if *watchFlag {
		if opts.inputPath == "-" {
			return xmain.UsageErrorf("-w[atch] cannot be combined with reading input from stdin")
		}
		if opts.outputPath == "-" {
			return xmain.UsageErrorf("-w[atch] cannot be combined with writing output to stdout")
		}
		w, err := newWatcher(ctx, ms, opts, *openFlag)
		if err != nil {
			return err
		}
		return w.run()
	}

	ctx, cancel := timelib.WithTimeout(ctx, time.Minute*2)
	defer cancel()

	_, err = compile(ctx, ms, opts)
	if err != nil {
		return fmt.Errorf("failed to compile %s: %w", ms.HumanPath(opts.inputPath), err)
	}
	if *openFlag {
		openOutput(ctx, ms, opts.outputPath)
	}
	return nil
}

// compile reads the input, renders it in the requested format and writes the output.
func compile(ctx context.Context, ms *xmain.State, opts *options) (*pdlib.Diagram, error) {
	start := time.Now()

	input, err := ms.ReadPath(opts.inputPath)
	if err != nil {
		return nil, err
	}
	compileOpts := opts.compile
	if opts.palettePath != "" {
		compileOpts.Palette, err = loadPalette(ms, opts.palettePath)
		if err != nil {
			return nil, err
		}
	}

	cancel := background.Repeat(func() {
		ms.Log.Info.Printf("compiling play diagram...")
	}, time.Second*5)
	defer cancel()

	var out []byte
	var diagram *pdlib.Diagram
	switch opts.format {
	case formatJSON:
		diagram, err = pdlib.Compile(ctx, input, &compileOpts)
		if err != nil {
			return nil, err
		}
		out, err = json.MarshalIndent(diagram.Tree, "", "  ")
		if err != nil {
			return nil, err
		}
		out = append(out, '\n')
	default:
		out, diagram, err = pdlib.Render(ctx, input, &compileOpts, &opts.svg)
		if err != nil {
			return nil, err
		}
	}

	err = ms.WritePath(opts.outputPath, out)
	if err != nil {
		return nil, err
	}
	if len(diagram.Tree.Skipped) > 0 {
		ms.Log.Warn.Printf("skipped %d of %d element(s), run with --debug for details", len(diagram.Tree.Skipped), len(diagram.Elements))
	}
	if opts.outputPath != "-" {
		ms.Log.Success.Printf("successfully compiled %s to %s in %s", ms.HumanPath(opts.inputPath), ms.HumanPath(opts.outputPath), time.Since(start))
	}
	return diagram, nil
}

func validateCmd(ctx context.Context, ms *xmain.State) error {
	if len(ms.Opts.Flags.Args()) != 2 {
		return xmain.UsageErrorf("validate must be passed exactly one input path")
	}
	inputPath := ms.Opts.Flags.Arg(1)
	input, err := ms.ReadPath(inputPath)
	if err != nil {
		return err
	}
	diagram, err := pdlib.Compile(ctx, input, &pdlib.CompileOptions{Strict: true})
	if err != nil {
		return err
	}
	if len(diagram.Tree.Skipped) > 0 {
		lines := make([]string, 0, len(diagram.Tree.Skipped))
		for _, sk := range diagram.Tree.Skipped {
			lines = append(lines, fmt.Sprintf("elements[%d] (id %s): %s", sk.Index, sk.ID, sk.Reason))
		}
		return fmt.Errorf("%d element(s) cannot be drawn:\n%s", len(lines), strings.Join(lines, "\n"))
	}
	ms.Log.Success.Printf("%s is valid", ms.HumanPath(inputPath))
	return nil
}

func loadPalette(ms *xmain.State, fp string) (_ *pdpalette.Config, err error) {
	defer xdefer.Errorf(&err, "failed to load palette %s", ms.HumanPath(fp))

	b, err := ms.ReadPath(fp)
	if err != nil {
		return nil, err
	}
	var cfg pdpalette.Config
	err = json.Unmarshal(b, &cfg)
	if err != nil {
		return nil, err
	}
	return &cfg, nil
}

func openOutput(ctx context.Context, ms *xmain.State, fp string) {
	if fp == "-" {
		return
	}
	err := xbrowser.OpenFile(ctx, ms.Env, fp)
	if err != nil {
		ms.Log.Warn.Printf("failed to open %s: %v", ms.HumanPath(fp), err)
	}
}

func parseFormat(flag, outputPath string) (outputFormat, error) {
	switch strings.ToLower(flag) {
	case "svg":
		return formatSVG, nil
	case "json":
		return formatJSON, nil
	case "":
	default:
		return "", xmain.UsageErrorf("--format must be svg or json, found %q", flag)
	}
	if strings.EqualFold(filepath.Ext(outputPath), ".json") {
		return formatJSON, nil
	}
	return formatSVG, nil
}

func isHref(s string) bool {
	for _, p := range []string{"http://", "https://", "data:", "file://"} {
		if strings.HasPrefix(s, p) {
			return true
		}
	}
	return false
}

func renameExt(fp string, newExt string) string {
	ext := filepath.Ext(fp)
	if ext == "" {
		return fp + newExt
	}
	return strings.TrimSuffix(fp, ext) + newExt
}
