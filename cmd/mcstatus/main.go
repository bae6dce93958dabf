package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	json "github.com/goccy/go-json"
	"mcstatus/internal/di"
	"mcstatus/internal/identicon"
	"mcstatus/internal/models"
	"mcstatus/internal/providers"
	"mcstatus/internal/structures"
	"os"
)

// errUnreachable makes a one-shot lookup exit with status 2.
var errUnreachable = errors.New("server unreachable")

func main() {
	var flags structures.CliFlags
	var serve, genIdenticon, alwaysUseIdenticon bool
	var address, protocol, dataRoot string

	flag.StringVar(&flags.ConfigPath, "config", "config.yaml", "path to the config file (used with -serve)")
	flag.BoolVar(&flags.DebugMode, "debug", false, "debug logging to stderr")
	flag.BoolVar(&serve, "serve", false, "run the HTTP API and the refresh scheduler")
	flag.StringVar(&address, "address", "", "server address, host or host:port")
	flag.StringVar(&protocol, "protocol", "auto", "java, bedrock or auto")
	flag.StringVar(&dataRoot, "data-root", os.Getenv("MCSTATUS_DATA_ROOT"), "directory holding cached server data")
	flag.BoolVar(&alwaysUseIdenticon, "identicon", false, "always return a generated icon")
	flag.BoolVar(&genIdenticon, "gen-identicon", false, "print the base64 identicon for -address and -protocol and exit")
	flag.Parse()

	var err error
	switch {
	case serve:
		err = runServer(&flags)
	case genIdenticon:
		err = runGenIdenticon(address, protocol)
	default:
		err = runOnce(flags.DebugMode, address, protocol, dataRoot, alwaysUseIdenticon)
	}
	if errors.Is(err, errUnreachable) {
		os.Exit(2)
	}
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func runServer(flags *structures.CliFlags) error {
	app, err := di.InitApp(flags)
	if err != nil {
		return fmt.Errorf("failed to initialize app: %w", err)
	}
	defer app.Close()
	return app.Run()
}

func runGenIdenticon(address, rawProtocol string) error {
	protocol, err := models.ParseProtocolType(rawProtocol)
	if err != nil {
		return err
	}
	icon, ok := identicon.NewGenerator().Generate(protocol, models.NewIdentity(address, protocol).Address)
	if !ok {
		return fmt.Errorf("failed to encode identicon")
	}
	fmt.Println(icon)
	return nil
}

func runOnce(debug bool, address, rawProtocol, dataRoot string, alwaysUseIdenticon bool) error {
	protocol, err := models.ParseProtocolType(rawProtocol)
	if err != nil {
		return err
	}

	logger := providers.NewConsoleLogger(debug)
	defer logger.Close()

	conf := &structures.Config{
		AppName: "mcstatus",
		Debug:   debug,
		Storage: structures.StorageConfig{DataRoot: dataRoot},
	}
	service, err := di.InitStatusService(conf, logger)
	if err != nil {
		return err
	}

	status := service.Resolve(context.Background(), address, protocol, dataRoot, alwaysUseIdenticon)
	out, err := json.MarshalIndent(models.NewStatusResponse(status), "", "  ")
	if err != nil {
		return err
	}
	fmt.Println(string(out))

	if _, unreachable := status.(*models.UnreachableStatus); unreachable {
		return errUnreachable
	}
	return nil
}
