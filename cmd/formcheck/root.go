package main

import (
	"fmt"
	"log/slog"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/goliatone/go-formcheck/internal/config"
	"github.com/goliatone/go-formcheck/internal/logging"
	"github.com/goliatone/go-formcheck/pkg/dom"
	"github.com/goliatone/go-formcheck/pkg/orchestrator"
	"github.com/goliatone/go-formcheck/pkg/render"
	"github.com/goliatone/go-formcheck/pkg/validation"
)

// app carries state shared by the subcommands of one invocation.
type app struct {
	v       *viper.Viper
	cfgFile string
	cfg     config.Config
	logger  *slog.Logger
}

func newRootCmd() *cobra.Command {
	a := &app{v: viper.New()}

	root := &cobra.Command{
		Use:   "formcheck",
		Short: "Validate HTML forms and render inline error messages",
		Long: `formcheck evaluates the inputs of an HTML form against their required,
min, max and type constraints, and writes the document back with an "error"
class on invalid fields and an error-message element next to each of them.

  formcheck check signup.html --set email=ada@example.com
  formcheck blur signup.html --field email
  formcheck prompt signup.html -o filled.html`,
		SilenceUsage:      true,
		PersistentPreRunE: a.load,
	}

	flags := root.PersistentFlags()
	flags.StringVar(&a.cfgFile, "config", "", "config file (default is ./.formcheck.yaml)")
	flags.String("catalog", "", "YAML catalog with extra patterns and messages")
	flags.String("ids", config.IDStrategyNext, "id strategy for anonymous fields (counter, uuid)")
	flags.String("id-prefix", "field-", "prefix for generated field ids")
	flags.String("error-class", render.DefaultErrorClass, "class added to invalid fields")
	flags.String("message-class", render.DefaultMessageClass, "class of message elements")
	flags.Bool("pattern-gate", false, "only check named patterns on fields with a pattern attribute")
	flags.StringP("log-level", "l", "warn", "log level (debug, info, warn, error)")
	flags.String("log-format", "text", "log format (text, json)")
	for _, name := range []string{"catalog", "ids", "id-prefix", "error-class", "message-class", "pattern-gate", "log-level", "log-format"} {
		if err := a.v.BindPFlag(name, flags.Lookup(name)); err != nil {
			panic(fmt.Errorf("formcheck: bind flag %q: %w", name, err))
		}
	}

	root.AddCommand(newCheckCmd(a), newBlurCmd(a), newPromptCmd(a))
	return root
}

func (a *app) load(cmd *cobra.Command, _ []string) error {
	cfg, err := config.Load(a.v, a.cfgFile)
	if err != nil {
		return err
	}
	level, err := logging.ParseLevel(cfg.LogLevel)
	if err != nil {
		return err
	}
	format, err := logging.ParseFormat(cfg.LogFormat)
	if err != nil {
		return err
	}
	a.cfg = cfg
	a.logger = logging.New(
		logging.WithLevel(level),
		logging.WithFormat(format),
		logging.WithOutput(cmd.ErrOrStderr()),
	)
	return nil
}

// orchestrator builds the validation stack described by the loaded config.
func (a *app) orchestrator(extra ...orchestrator.Option) (*orchestrator.Orchestrator, error) {
	engineOpts := []validation.Option{validation.WithPatternAttributeGate(a.cfg.PatternGate)}
	if a.cfg.Catalog != "" {
		catalog, err := validation.LoadCatalogFile(a.cfg.Catalog)
		if err != nil {
			return nil, err
		}
		engineOpts = append(engineOpts, validation.WithCatalog(catalog))
	}

	var ids dom.IDGenerator = dom.NewCounter(a.cfg.IDPrefix)
	if a.cfg.IDs == config.IDStrategyUUID {
		ids = dom.UUIDGenerator{Prefix: a.cfg.IDPrefix}
	}

	options := []orchestrator.Option{
		orchestrator.WithEngine(validation.New(engineOpts...)),
		orchestrator.WithRenderer(render.NewHTMLRenderer(
			render.WithErrorClass(a.cfg.ErrorClass),
			render.WithMessageClass(a.cfg.MessageClass),
		)),
		orchestrator.WithIDGenerator(ids),
		orchestrator.WithLogger(a.logger),
	}
	return orchestrator.New(append(options, extra...)...), nil
}
