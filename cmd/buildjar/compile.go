package main

import (
	"fmt"
	"os"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"buildjar/internal/charset"
	"buildjar/internal/compile"
	"buildjar/internal/config"
	"buildjar/internal/diag"
	"buildjar/internal/engine"
	"buildjar/internal/ui"
)

var (
	compileEncoding      string
	compileClassOutput   string
	compileSourceOutput  string
	compileClassPath     []string
	compileBootClassPath []string
	compileSourcePath    []string
	compileProcessorPath []string
	compileProcessors    []string
	compileRawOptions    []string
	compileUI            string
	compileUseCache      bool
	compileJobs          int
)

func init() {
	compileCmd.Flags().StringVar(&compileEncoding, "encoding", "", "source file encoding (default UTF-8)")
	compileCmd.Flags().StringVarP(&compileClassOutput, "class-output", "d", "", "directory for compiled artifacts (required)")
	compileCmd.Flags().StringVarP(&compileSourceOutput, "source-output", "s", "", "directory for generated sources")
	compileCmd.Flags().StringSliceVar(&compileClassPath, "classpath", nil, "class search path entries")
	compileCmd.Flags().StringSliceVar(&compileBootClassPath, "bootclasspath", nil, "boot class search path entries")
	compileCmd.Flags().StringSliceVar(&compileSourcePath, "sourcepath", nil, "source search path entries")
	compileCmd.Flags().StringSliceVar(&compileProcessorPath, "processorpath", nil, "processor search path entries")
	compileCmd.Flags().StringSliceVar(&compileProcessors, "processor", nil, "registered processor names (fixes the processor set)")
	compileCmd.Flags().StringArrayVar(&compileRawOptions, "option", nil, "raw tool option (repeatable, order-significant)")
	compileCmd.Flags().StringVar(&compileUI, "ui", "auto", "progress UI (auto|on|off)")
	compileCmd.Flags().BoolVar(&compileUseCache, "cache", false, "reuse cached results for unchanged inputs")
	compileCmd.Flags().IntVar(&compileJobs, "jobs", 0, "max concurrent unit analyses (0 = engine default)")
}

var compileCmd = &cobra.Command{
	Use:          "compile [flags] <source>...",
	Short:        "Compile sources into unit artifacts",
	Long:         "Compile assembles one invocation from the given sources and options, drives the engine, and prints the collected diagnostics.",
	Args:         cobra.MinimumNArgs(1),
	SilenceUsage: true,
	RunE:         compileExecution,
}

func compileExecution(cmd *cobra.Command, sources []string) error {
	uiModeValue, err := readUIMode(compileUI)
	if err != nil {
		return err
	}
	quiet, err := cmd.Root().PersistentFlags().GetBool("quiet")
	if err != nil {
		return err
	}

	manifest, manifestFound, err := config.Load(".")
	if err != nil {
		return err
	}
	options, classOutput, sourceOutput := mergeManifest(manifest, manifestFound)
	if compileClassOutput != "" {
		classOutput = compileClassOutput
	}
	if compileSourceOutput != "" {
		sourceOutput = compileSourceOutput
	}
	options = append(options, compileRawOptions...)
	if compileEncoding != "" {
		options = append(options, charset.EncodingFlag, compileEncoding)
	}

	builder := compile.NewBuilder().
		SourceFiles(sources...).
		Options(options...).
		ClassOutput(classOutput).
		SourceOutput(sourceOutput).
		ClassPath(mergePaths(compileClassPath, manifestPaths(manifest, manifestFound, func(c config.CompileConfig) []string { return c.ClassPath }))...).
		BootClassPath(mergePaths(compileBootClassPath, manifestPaths(manifest, manifestFound, func(c config.CompileConfig) []string { return c.BootClassPath }))...).
		SourcePath(mergePaths(compileSourcePath, manifestPaths(manifest, manifestFound, func(c config.CompileConfig) []string { return c.SourcePath }))...).
		ProcessorPath(mergePaths(compileProcessorPath, manifestPaths(manifest, manifestFound, func(c config.CompileConfig) []string { return c.ProcessorPath }))...)

	if len(compileProcessors) > 0 {
		procs := make([]engine.Processor, 0, len(compileProcessors))
		for _, name := range compileProcessors {
			p, ok := engine.NewProcessor(name)
			if !ok {
				return fmt.Errorf("unknown processor %q", name)
			}
			procs = append(procs, p)
		}
		builder.Processors(procs...)
	}

	args, err := builder.Build()
	if err != nil {
		return err
	}

	colored := useColor(cmd, os.Stdout)

	var cache *compile.DiskCache
	var key compile.Digest
	if compileUseCache {
		cache, err = compile.OpenDiskCache("buildjar")
		if err != nil {
			return err
		}
		key, err = compile.Fingerprint(args)
		if err != nil {
			return err
		}
		var payload compile.CachePayload
		hit, cacheErr := cache.Get(key, &payload)
		if cacheErr != nil {
			return cacheErr
		}
		if hit {
			log.Debug("result cache hit", "encoding", payload.Encoding)
			return report(payload.Ok, payload.Diags(), colored, quiet)
		}
	}

	opts := &compile.Options{Jobs: compileJobs}
	var res *compile.Result
	if shouldUseTUI(uiModeValue) {
		res, err = runCompileWithUI(cmd.Context(), "compiling", sources, args, opts)
	} else {
		res, err = compile.CompileWith(cmd.Context(), args, opts)
	}
	if err != nil {
		return err
	}
	log.Debug("invocation completed",
		"ok", res.Ok(),
		"encoding", res.Session().FileManager().EncodingName(),
		"diagnostics", len(res.Diagnostics()))

	if cache != nil {
		if putErr := cache.Put(key, compile.PayloadFromResult(res)); putErr != nil {
			log.Debug("result cache write failed", "err", putErr)
		}
	}
	return report(res.Ok(), res.Diagnostics(), colored, quiet)
}

func report(ok bool, diags []diag.Diagnostic, colored, quiet bool) error {
	ui.PrintDiagnostics(os.Stderr, diags, colored)
	if !quiet {
		fmt.Fprintln(os.Stderr, ui.Summary(ok, diags, colored))
	}
	if !ok {
		return fmt.Errorf("compilation failed")
	}
	return nil
}

func mergeManifest(manifest *config.Manifest, found bool) (options []string, classOutput, sourceOutput string) {
	if !found {
		return nil, "", ""
	}
	c := manifest.Config.Compile
	options = append(options, c.Options...)
	if c.Encoding != "" {
		options = append(options, charset.EncodingFlag, c.Encoding)
	}
	return options, c.ClassOutput, c.SourceOutput
}

func manifestPaths(manifest *config.Manifest, found bool, pick func(config.CompileConfig) []string) []string {
	if !found {
		return nil
	}
	return pick(manifest.Config.Compile)
}

// mergePaths prefers explicit flag values over manifest ones.
func mergePaths(flag, fromManifest []string) []string {
	if len(flag) > 0 {
		return flag
	}
	return fromManifest
}
