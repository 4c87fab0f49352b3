package cmd

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"

	"imgstudio/config"
	"imgstudio/config/validation"
	"imgstudio/internal/compatibility"
	"imgstudio/internal/export"
	"imgstudio/internal/generation"
	"imgstudio/internal/presets"
	"imgstudio/internal/providers"
	"imgstudio/internal/session"
)

// generateFlags collects the generate command's flags
type generateFlags struct {
	negative  string
	model     string
	size      string
	count     int
	style     string
	outputDir string
	noSave    bool

	enhance   bool
	private   bool
	nologo    bool
	safe      bool
	steps     int
	guidance  float64
	scheduler string
}

var genFlags generateFlags

var generateCmd = &cobra.Command{
	Use:   "generate <prompt>",
	Short: "Generate images from a prompt",
	Long: `Generate images from a text prompt with the active (or --profile) profile
and save them to the output directory. A profile that has not passed
validation is checked first and refused if the check fails.

Examples:
  imgstudio generate "a lighthouse at dusk" --style watercolor
  imgstudio generate "a red fox" -m flux-realism -s 768x1024 -n 4
  imgstudio -p hf generate "a castle" --steps 30 --guidance 8 --negative basic`,
	Args: cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		st, err := loadState()
		if err != nil {
			return err
		}
		p, err := st.profile("")
		if err != nil {
			return err
		}
		if err := st.profiles.SetActive(p.Name); err != nil {
			return err
		}

		kind := providers.KindCompatible
		if provider, err := providers.Get(p.Provider); err == nil {
			kind = provider.Kind()
		}

		params, err := buildParams(cmd.Flags(), strings.Join(args, " "), kind)
		if err != nil {
			return err
		}

		ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
		defer stop()

		errOut := cmd.ErrOrStderr()
		if !p.Validated {
			ok, message := compatibility.Validate(ctx, p)
			if !ok {
				return fmt.Errorf("%w: %s: %s", session.ErrProfileNotValidated, p.Name, message)
			}
			if err := st.profiles.SetValidated(p.Name, true); err != nil {
				return err
			}
			fmt.Fprintf(errOut, "Validated %s: %s\n", p.Name, message)
		}

		sess := session.New(st.profiles, st.settings)
		dispatcher := generation.NewDispatcher(generation.WithTimeout(st.settings.RequestTimeout))

		fmt.Fprintf(errOut, "Generating %d image(s) with %s...\n", params.Count, p.Name)
		outcome, entry, err := sess.Generate(ctx, dispatcher, nil, session.Request{Params: params, Style: genFlags.style})
		if err != nil {
			return err
		}
		if !outcome.OK {
			return fmt.Errorf("generation failed: %s", outcome.Reason)
		}
		if outcome.Partial() {
			fmt.Fprintf(errOut, "⚠️  Only %d of %d images were generated\n", len(outcome.Result.Images), outcome.Result.Requested)
		}

		out := cmd.OutOrStdout()
		if genFlags.noSave {
			fmt.Fprintf(out, "Generated %d image(s) (not saved)\n", len(entry.Images))
			return nil
		}

		dir := st.settings.OutputDir
		if genFlags.outputDir != "" {
			dir = genFlags.outputDir
		}
		paths, err := export.NewExporter(dir).SaveEntry(entry)
		if err != nil {
			return err
		}
		for _, path := range paths {
			line := path
			if data, err := os.ReadFile(path); err == nil {
				if info, err := export.Describe(data); err == nil {
					line = fmt.Sprintf("%s (%s)", path, info)
				}
			}
			fmt.Fprintln(out, line)
		}
		return nil
	},
}

// buildParams validates the prompt and flags and turns them into request params.
// Advanced options only apply to the provider kind that understands them.
func buildParams(flags *pflag.FlagSet, prompt string, kind providers.Kind) (generation.Params, error) {
	iv := validation.NewInputValidator()
	if err := iv.ValidatePrompt(prompt); err != nil {
		return generation.Params{}, err
	}
	if genFlags.model != "" {
		if err := iv.ValidateModelName(genFlags.model); err != nil {
			return generation.Params{}, err
		}
	}
	if genFlags.style != "" {
		if _, ok := presets.Find(presets.Styles, genFlags.style); !ok {
			return generation.Params{}, fmt.Errorf("unknown style '%s'", genFlags.style)
		}
	}
	size, err := presets.ResolveSize(genFlags.size)
	if err != nil {
		return generation.Params{}, err
	}
	if genFlags.count < 1 || genFlags.count > config.MaxBatchSize {
		return generation.Params{}, fmt.Errorf("count must be between 1 and %d", config.MaxBatchSize)
	}

	params := generation.Params{
		Prompt:         prompt,
		NegativePrompt: presets.NegativePrompt(genFlags.negative),
		Model:          genFlags.model,
		Size:           size,
		Count:          genFlags.count,
	}

	switch kind {
	case providers.KindOpen:
		opts := presets.DefaultOpenEndpointOptions()
		for flag, dst := range map[string]**bool{
			"enhance": &opts.Enhance,
			"private": &opts.Private,
			"nologo":  &opts.NoLogo,
			"safe":    &opts.Safe,
		} {
			if flags.Changed(flag) {
				v, _ := flags.GetBool(flag)
				*dst = &v
			}
		}
		params.Options = opts
	case providers.KindInference:
		var opts generation.Options
		if flags.Changed("steps") {
			opts.Steps = &genFlags.steps
		}
		if flags.Changed("guidance") {
			opts.Guidance = &genFlags.guidance
		}
		opts.Scheduler = genFlags.scheduler
		if err := presets.ValidateInferenceOptions(opts); err != nil {
			return generation.Params{}, err
		}
		params.Options = opts
	}
	return params, nil
}

func init() {
	rootCmd.AddCommand(generateCmd)

	f := generateCmd.Flags()
	f.StringVar(&genFlags.negative, "negative", "", "Negative prompt, or a negative preset key")
	f.StringVarP(&genFlags.model, "model", "m", "", "Model id (defaults to the first model of the provider)")
	f.StringVarP(&genFlags.size, "size", "s", presets.DefaultSize, "Size preset key or WIDTHxHEIGHT")
	f.IntVarP(&genFlags.count, "count", "n", 1, fmt.Sprintf("Number of images (1-%d)", config.MaxBatchSize))
	f.StringVar(&genFlags.style, "style", presets.StyleNone, "Style preset key")
	f.StringVarP(&genFlags.outputDir, "output", "o", "", "Output directory (defaults to settings.output_dir)")
	f.BoolVar(&genFlags.noSave, "no-save", false, "Do not write images to disk")

	f.BoolVar(&genFlags.enhance, "enhance", true, "Pollinations: let the service enhance the prompt")
	f.BoolVar(&genFlags.private, "private", true, "Pollinations: keep the image out of the public feed")
	f.BoolVar(&genFlags.nologo, "nologo", true, "Pollinations: remove the watermark")
	f.BoolVar(&genFlags.safe, "safe", false, "Pollinations: strict content filter")
	f.IntVar(&genFlags.steps, "steps", 25, fmt.Sprintf("Hugging Face: inference steps (%d-%d)", presets.MinSteps, presets.MaxSteps))
	f.Float64Var(&genFlags.guidance, "guidance", 7.5, "Hugging Face: guidance scale")
	f.StringVar(&genFlags.scheduler, "scheduler", "", "Hugging Face: scheduler name")
}
