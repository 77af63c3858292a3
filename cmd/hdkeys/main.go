// hdkeys generates BIP-39 mnemonics and derives Bitcoin, Ethereum and
// Solana account keys from them.
package main

import (
	"bufio"
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/DeFiFoFum/cryptography-resources/config"
	"github.com/DeFiFoFum/cryptography-resources/internal/log"
)

const version = "0.1.0"

// errUsage signals that usage text was printed for a bad invocation.
var errUsage = errors.New("usage")

func main() {
	err := run(os.Args[1:], os.Stdin, os.Stdout, os.Stderr)
	if errors.Is(err, errUsage) {
		os.Exit(2)
	}
	if err != nil {
		fatal("%v", err)
	}
}

// app carries the resolved configuration and I/O for one invocation.
type app struct {
	cfg    *config.Config
	stdin  *bufio.Reader
	tty    *os.File // non-nil when stdin is a terminal
	stdout io.Writer
	stderr io.Writer
}

func run(args []string, stdin io.Reader, stdout, stderr io.Writer) error {
	cfg, flags, err := config.Load(args)
	if err != nil {
		return err
	}
	if flags.Version {
		fmt.Fprintf(stdout, "hdkeys version %s\n", version)
		return nil
	}
	if flags.Help {
		fmt.Fprint(stdout, config.Usage())
		return nil
	}
	if len(flags.Args) == 0 {
		fmt.Fprint(stderr, config.Usage())
		return errUsage
	}

	logFile := cfg.LogFilePath()
	if logFile != "" {
		if err := os.MkdirAll(filepath.Dir(logFile), 0700); err != nil {
			return fmt.Errorf("create log directory: %w", err)
		}
	}
	if err := log.InitWriter(stderr, cfg.Log.Level, cfg.Log.JSON, logFile); err != nil {
		return fmt.Errorf("init logging: %w", err)
	}

	a := &app{
		cfg:    cfg,
		stdin:  bufio.NewReader(stdin),
		tty:    terminal(stdin),
		stdout: stdout,
		stderr: stderr,
	}

	cmd := flags.Args[0]
	log.CLI.Debug().Str("command", cmd).Str("network", string(cfg.Network)).Msg("Running command")

	// -h on a command prints that command's flags and is not a failure.
	err = a.dispatch(cmd, flags.Args[1:])
	if errors.Is(err, flag.ErrHelp) {
		return nil
	}
	return err
}

func (a *app) dispatch(cmd string, cmdArgs []string) error {
	switch cmd {
	case "mnemonic":
		return a.cmdMnemonic(cmdArgs)
	case "validate":
		return a.cmdValidate(cmdArgs)
	case "entropy":
		return a.cmdEntropy(cmdArgs)
	case "from-entropy":
		return a.cmdFromEntropy(cmdArgs)
	case "seed":
		return a.cmdSeed(cmdArgs)
	case "derive":
		return a.cmdDerive(cmdArgs)
	case "path":
		return a.cmdPath(cmdArgs)
	case "keystore":
		return a.cmdKeystore(cmdArgs)
	case "version":
		fmt.Fprintf(a.stdout, "hdkeys version %s\n", version)
		return nil
	case "help":
		fmt.Fprint(a.stdout, config.Usage())
		return nil
	default:
		fmt.Fprintf(a.stderr, "Unknown command: %s\n\n", cmd)
		fmt.Fprint(a.stderr, config.Usage())
		return errUsage
	}
}

// ── Error helper ────────────────────────────────────────────────────────

func fatal(format string, args ...interface{}) {
	fmt.Fprintf(os.Stderr, "Error: "+format+"\n", args...)
	os.Exit(1)
}
