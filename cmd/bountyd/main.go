package main

import (
	"flag"
	"fmt"
	"os"
	"path/filepath"

	"github.com/algobounty/weave"
	bountyd "github.com/algobounty/weave/cmd/bountyd/app"
	"github.com/algobounty/weave/commands"
	"github.com/algobounty/weave/commands/server"
	"github.com/tendermint/tendermint/libs/log"
)

var (
	flagHome = "home"
	varHome  *string
)

func init() {
	defaultHome := filepath.Join(os.ExpandEnv("$HOME"), ".bountyd")
	varHome = flag.String(flagHome, defaultHome, "directory to store files under")

	flag.CommandLine.Usage = helpMessage
}

func helpMessage() {
	fmt.Println("bountyd")
	fmt.Println("          Issue bounty escrow node")
	fmt.Println("")
	fmt.Println("help      Print this message")
	fmt.Println("init      Initialize app options in genesis file")
	fmt.Println("start     Run the abci server")
	fmt.Println("validate  Check the app_state of genesis files")
	fmt.Println("getblock  Extract a block from blockchain.db")
	fmt.Println("testgen   Write example encodings to a directory")
	fmt.Println("version   Print the app version")
	fmt.Println(`
  -home string
        directory to store files under (default "$HOME/.bountyd")`)
}

func main() {
	logger := log.NewTMLogger(log.NewSyncWriter(os.Stdout)).
		With("module", "bounty")

	flag.Parse()
	if flag.NArg() == 0 {
		fmt.Println("Missing command:")
		helpMessage()
		os.Exit(1)
	}

	cmd := flag.Arg(0)
	rest := flag.Args()[1:]

	var err error
	switch cmd {
	case "help":
		helpMessage()
	case "init":
		err = server.InitCmd(bountyd.GenInitOptions, logger, *varHome, rest)
	case "start":
		err = server.StartCmd(bountyd.GenerateApp, logger, *varHome, rest)
	case "validate":
		err = server.ValidateGenesis(bountyd.Initializers(), rest)
	case "getblock":
		err = server.GetBlockCmd(rest)
	case "testgen":
		err = commands.TestGenCmd(bountyd.Examples(), rest)
	case "version":
		fmt.Println(weave.Version())
	default:
		err = fmt.Errorf("unknown command: %s", cmd)
	}

	if err != nil {
		fmt.Printf("Error: %+v\n\n", err)
		helpMessage()
		os.Exit(1)
	}
}
