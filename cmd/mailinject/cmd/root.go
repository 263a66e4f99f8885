package cmd

import (
	"io"
	"log/slog"
	"os"

	"github.com/mattn/go-isatty"
	"github.com/spf13/cobra"

	"github.com/zostay/mailinject/identity"
	"github.com/zostay/mailinject/inject"
	"github.com/zostay/mailinject/message"
	"github.com/zostay/mailinject/queue"
)

var (
	useArgs      bool
	useBoth      bool
	useEither    bool
	useHeader    bool
	from         string
	noQueue      bool
	showEnvelope bool
	verbose      bool
	configDir    string
	queuePath    string
	maxHeaderLen int
)

var rootCmd = &cobra.Command{
	Use:          "mailinject [recipients] <message",
	Short:        "Reformat and inject a message into the mail queue",
	SilenceUsage: true,
}

func init() {
	// assigned here rather than in the literal to avoid an initialization cycle
	rootCmd.RunE = RunInject

	fs := rootCmd.Flags()
	fs.BoolVarP(&useArgs, "use-args", "a", false, "Use only command-line arguments for recipients")
	fs.BoolVarP(&useBoth, "use-both", "b", false, "Use both command-line and message header for recipients")
	fs.BoolVarP(&useEither, "use-either", "e", false, "Use either command-line or message header for recipients (default)")
	fs.BoolVarP(&useHeader, "use-header", "h", false, "Use only message header for recipients")
	fs.StringVarP(&from, "from", "f", "", "Set the sender address")
	fs.BoolVarP(&noQueue, "no-queue", "n", false, "Send the formatted message to standard output")
	fs.BoolVarP(&showEnvelope, "show-envelope", "v", false, "Show the envelope with the message")
	fs.BoolVar(&verbose, "verbose", false, "Log debugging details to standard error")
	fs.StringVar(&configDir, "config-dir", identity.DefaultConfigDir, "Directory holding defaultdomain, defaulthost and idhost")
	fs.StringVar(&queuePath, "queue", queue.DefaultConsumerPath, "The program that queues the message")
	fs.IntVar(&maxHeaderLen, "max-header-length", message.DefaultMaxHeaderLength, "Reject messages whose header is longer than this many bytes (0 for no limit)")

	// -h selects header recipients, so help gets no shorthand
	fs.Bool("help", false, "help for mailinject")

	rootCmd.MarkFlagsMutuallyExclusive("use-args", "use-both", "use-either", "use-header")
}

// recipientMode returns the mode selected by the flags.
func recipientMode() inject.RecipientMode {
	switch {
	case useArgs:
		return inject.UseArgs
	case useBoth:
		return inject.UseBoth
	case useHeader:
		return inject.UseHeader
	default:
		return inject.UseEither
	}
}

func newLogger(w io.Writer) *slog.Logger {
	level := slog.LevelInfo
	if verbose {
		level = slog.LevelDebug
	}

	return slog.New(slog.NewTextHandler(w, &slog.HandlerOptions{Level: level})).
		With("program", rootCmd.Name())
}

// RunInject reads the message from standard input, reformats it, and hands it
// to the queue, or shows it when --no-queue is given.
func RunInject(cmd *cobra.Command, args []string) error {
	logger := newLogger(cmd.ErrOrStderr())

	cfg, err := identity.Load(configDir)
	if err != nil {
		return err
	}

	env := identity.NewEnv()
	id := identity.Resolve(env, cfg)
	flags := inject.ParseFlags(env.GetString(identity.KeyFlags))
	mode := recipientMode()

	logger.Debug("configured",
		"defaulthost", cfg.DefaultHost,
		"defaultdomain", cfg.DefaultDomain,
		"idhost", cfg.IDHost,
		"flags", flags.String(),
		"mode", mode.String())

	inj := inject.New(
		inject.WithLogger(logger),
		inject.WithConfig(cfg),
		inject.WithIdentity(id),
		inject.WithFlags(flags),
		inject.WithHeaderRecipients(mode.HeaderRecipients(len(args))),
		inject.WithParseOptions(message.WithMaxHeaderLength(maxHeaderLen)),
	)

	if from != "" {
		if err := inj.SetSender(from); err != nil {
			return err
		}
	}

	if mode.ArgRecipients() {
		if err := inj.AddRecipientArgs(args...); err != nil {
			return err
		}
	}

	in := cmd.InOrStdin()
	if f, isFile := in.(*os.File); isFile && isatty.IsTerminal(f.Fd()) {
		logger.Info("reading the message from the terminal, end it with EOF")
	}

	m, err := inj.Inject(in)
	if err != nil {
		return err
	}

	var transport queue.Transport
	if noQueue {
		transport = &queue.Display{W: cmd.OutOrStdout(), Envelope: showEnvelope}
	} else {
		transport = &queue.Consumer{
			Path:   queuePath,
			Stdout: cmd.OutOrStdout(),
			Stderr: cmd.ErrOrStderr(),
			Logger: logger,
		}
	}

	return transport.Send(m)
}

// Execute runs the command line.
func Execute() error {
	return rootCmd.Execute()
}
