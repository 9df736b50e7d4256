package config

import (
	"errors"
	"flag"
	"fmt"
	"net"
	"strconv"
	"time"
)

// NetAddress holds structured network address data for host and port.
// It implements the flag.Value interface.
type NetAddress struct {
	Host string
	Port int
}

// parseFlags registers all configuration flags on fs and parses args.
//
// Flags:
//
//	-a server listen address in format [host]:[port]
//	-r registry server address used by the client
//	-d database DSN
//	-db-driver client replica driver ("sqlite3" or "sqlite")
//	-c/-config json file path with configs
//	-request-timeout server request timeout (e.g. "30s")
//	-adapter-timeout client request timeout (e.g. "5s")
//	-max-push-attempts rejected pushes before a staged row is parked
//	-sync-interval refresh worker period (e.g. "1m", 0 disables)
//	-log-file client log file path
func parseFlags(fs *flag.FlagSet, args []string) (*StructuredConfig, error) {
	var (
		serverAddress   NetAddress
		registryAddress string
		databaseDSN     string
		databaseDriver  string
		jsonConfigPath  string
		requestTimeout  time.Duration
		adapterTimeout  time.Duration
		maxPushAttempts int
		syncInterval    time.Duration
		logFile         string
	)

	fs.Var(&serverAddress, "a", "Net address host:port")
	fs.StringVar(&registryAddress, "r", "", "Registry server address")
	fs.StringVar(&databaseDSN, "d", "", "Database DSN")
	fs.StringVar(&databaseDriver, "db-driver", "", "Client replica driver (sqlite3|sqlite)")
	fs.StringVar(&jsonConfigPath, "c", "", "JSON config file path")
	fs.StringVar(&jsonConfigPath, "config", "", "JSON config file path (alias)")
	fs.DurationVar(&requestTimeout, "request-timeout", 0, "Server request timeout (e.g., 30s, 1m)")
	fs.DurationVar(&adapterTimeout, "adapter-timeout", 0, "Client request timeout (e.g., 5s)")
	fs.IntVar(&maxPushAttempts, "max-push-attempts", 0, "Rejected pushes before a staged row is parked")
	fs.DurationVar(&syncInterval, "sync-interval", 0, "Refresh worker period (e.g., 1m)")
	fs.StringVar(&logFile, "log-file", "", "Client log file path")

	if err := fs.Parse(args); err != nil {
		return nil, fmt.Errorf("error parsing flags: %w", err)
	}

	return &StructuredConfig{
		App: App{
			LogFile: logFile,
		},
		Storage: Storage{
			DB: DB{
				DSN:    databaseDSN,
				Driver: databaseDriver,
			},
		},
		Server: Server{
			HTTPAddress:    serverAddress.String(),
			RequestTimeout: requestTimeout,
		},
		Adapter: Adapter{
			HTTPAddress:    registryAddress,
			RequestTimeout: adapterTimeout,
		},
		Sync: Sync{
			MaxPushAttempts: maxPushAttempts,
		},
		Workers: Workers{
			SyncInterval: syncInterval,
		},
		JSONFilePath: jsonConfigPath,
	}, nil
}

// String returns a canonical host:port string for a NetAddress.
// An unset address yields "".
func (a *NetAddress) String() string {
	if a.Host == "" && a.Port == 0 {
		return ""
	}

	return net.JoinHostPort(a.Host, strconv.Itoa(a.Port))
}

// Set parses the input string of form host:port and populates the NetAddress.
// An empty host means all interfaces. Hosts other than "localhost" must be
// IP addresses.
func (a *NetAddress) Set(s string) error {
	host, portStr, err := net.SplitHostPort(s)
	if err != nil {
		return errors.New("need address in a form `host:port`")
	}

	port, err := strconv.Atoi(portStr)
	if err != nil {
		return err
	}

	if port < 1 || port > 65535 {
		return errors.New("port number must be in range 1..65535")
	}

	if host != "" && host != "localhost" && net.ParseIP(host) == nil {
		return errors.New("incorrect IP-address provided")
	}

	a.Host = host
	a.Port = port
	return nil
}
