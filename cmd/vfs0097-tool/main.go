// Command vfs0097-tool inspects VFS0097 key material from the command
// line: it derives session keys from an installation seed, parses flash
// partition dumps, and replays the startup sequence against an emulated
// sensor.
package main

import (
	"context"
	"encoding/hex"
	"fmt"
	"log"
	"os"

	"github.com/urfave/cli/v3"

	"github.com/backkem/vfs0097/pkg/flash"
	"github.com/backkem/vfs0097/pkg/keystore"
	"github.com/backkem/vfs0097/pkg/seed"
	"github.com/backkem/vfs0097/pkg/sensor"
	"github.com/backkem/vfs0097/pkg/transport"
)

func main() {
	app := &cli.Command{
		Name:  "vfs0097-tool",
		Usage: "Inspect VFS0097 sensor key material",
		Commands: []*cli.Command{
			deriveCommand(),
			parseCommand(),
			openCommand(),
		},
	}

	if err := app.Run(context.Background(), os.Args); err != nil {
		log.Fatal(err)
	}
}

func seedFlag() cli.Flag {
	return &cli.StringFlag{
		Name:  "seed",
		Usage: "installation seed in hex (default: the VirtualBox placeholder)",
	}
}

func resolveSeed(cmd *cli.Command) ([]byte, error) {
	s := cmd.String("seed")
	if s == "" {
		return seed.Default(), nil
	}
	raw, err := hex.DecodeString(s)
	if err != nil {
		return nil, fmt.Errorf("invalid seed: %w", err)
	}
	return raw, nil
}

func deriveCommand() *cli.Command {
	return &cli.Command{
		Name:   "derive",
		Usage:  "Derive the session keys for an installation seed",
		Flags:  []cli.Flag{seedFlag()},
		Action: runDerive,
	}
}

func runDerive(ctx context.Context, cmd *cli.Command) error {
	installSeed, err := resolveSeed(cmd)
	if err != nil {
		return err
	}

	keys := keystore.DeriveSessionKeys(installSeed)
	fmt.Printf("seed:       %x\n", installSeed)
	fmt.Printf("master:     %x\n", keys.Master)
	fmt.Printf("validation: %x\n", keys.Validation)
	return nil
}

func parseCommand() *cli.Command {
	return &cli.Command{
		Name:      "parse",
		Usage:     "Parse a flash partition dump and report recovered key material",
		ArgsUsage: "FILE",
		Flags:     []cli.Flag{seedFlag()},
		Action:    runParse,
	}
}

func runParse(ctx context.Context, cmd *cli.Command) error {
	if cmd.Args().Len() != 1 {
		return fmt.Errorf("expected exactly one partition dump file")
	}
	partition, err := os.ReadFile(cmd.Args().First())
	if err != nil {
		return err
	}
	installSeed, err := resolveSeed(cmd)
	if err != nil {
		return err
	}

	store := keystore.NewStore(keystore.DeriveSessionKeys(installSeed), nil)
	if err := flash.NewParser(nil).Parse(partition, store); err != nil {
		return err
	}

	reportStore(store)
	return nil
}

func openCommand() *cli.Command {
	return &cli.Command{
		Name:  "open",
		Usage: "Replay the startup sequence against an emulated sensor",
		Flags: []cli.Flag{
			seedFlag(),
			&cli.StringFlag{
				Name:     "partition",
				Usage:    "flash partition dump served by the emulated sensor",
				Required: true,
			},
		},
		Action: runOpen,
	}
}

func runOpen(ctx context.Context, cmd *cli.Command) error {
	partition, err := os.ReadFile(cmd.String("partition"))
	if err != nil {
		return err
	}
	installSeed, err := resolveSeed(cmd)
	if err != nil {
		return err
	}

	pipe := transport.NewPipe()
	defer pipe.Close()
	scripted := transport.ServeScript(pipe.DeviceConn(), sensor.InitExchanges(partition))

	device, err := sensor.New(sensor.Config{
		Transport: transport.NewEndpoint(pipe.HostConn()),
		Seed:      installSeed,
	})
	if err != nil {
		return err
	}
	if err := device.Open(ctx); err != nil {
		return err
	}
	defer device.Close()

	if err := scripted.Err(); err != nil {
		return err
	}
	fmt.Printf("startup complete after %d exchanges\n", scripted.Step())

	if cert, err := device.Certificate(); err == nil {
		fmt.Printf("certificate: %d bytes\n", len(cert))
	}
	if key, err := device.PrivateKey(); err == nil {
		fmt.Printf("private key: %x\n", key.PublicKey.X.FillBytes(make([]byte, 32)))
	}
	verdict, err := device.TrustVerdict()
	if err != nil {
		return err
	}
	fmt.Printf("device trust: %v\n", verdict)
	return nil
}

func reportStore(store *keystore.Store) {
	if cert, err := store.Certificate(); err == nil {
		fmt.Printf("certificate:  %d bytes\n", len(cert))
	} else {
		fmt.Printf("certificate:  not recovered (%v)\n", err)
	}
	if key, err := store.PrivateKey(); err == nil {
		fmt.Printf("private key:  recovered, public X %x\n", key.PublicKey.X.FillBytes(make([]byte, 32)))
	} else {
		fmt.Printf("private key:  not recovered (%v)\n", err)
	}
	if key, err := store.PeerKey(); err == nil {
		fmt.Printf("peer key:     trusted, X %x\n", key.X.FillBytes(make([]byte, 32)))
	} else {
		fmt.Printf("peer key:     %v\n", err)
	}
	fmt.Printf("trust:        %v\n", store.Verdict())
}
