// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package config

import (
	"errors"
	"net"
	"strconv"
	"strings"
	"time"

	"github.com/spf13/pflag"
)

// NetAddress holds structured network address data for host and port.
// It implements the pflag.Value interface.
type NetAddress struct {
	Host string
	Port int
}

// Flags holds the values of the command-line flags registered by
// [BindFlags]. Unset flags keep their zero value and are ignored when the
// configuration is merged.
type Flags struct {
	jsonConfigPath string
	logFile        string
	logLevel       string

	databaseDSN    string
	databaseDriver string

	adapterAddress string
	wsAddress      string
	requestTimeout time.Duration

	syncInterval     time.Duration
	cycleTimeout     time.Duration
	moodsFullRefresh bool

	devServerAddress NetAddress
}

// BindFlags registers the configuration flags on fs, usually the
// persistent flag set of the root cobra command.
//
// Flags:
//
//	-c/--config json file path with configs
//	--log-file client log file path
//	--log-level zerolog level
//	-d/--db local database DSN
//	--db-driver sqlite3 or sqlite
//	-a/--address remote REST base URL
//	--ws-address live-update WebSocket URL
//	--request-timeout request timeout (e.g., "30s", "1m")
//	--sync-interval timer trigger period
//	--cycle-timeout hard deadline of one cycle
//	--moods-full-refresh re-fetch the full mood listing every cycle
//	--listen dev server address in format [host]:[port]
func BindFlags(fs *pflag.FlagSet) *Flags {
	f := &Flags{}

	fs.StringVarP(&f.jsonConfigPath, "config", "c", "", "JSON config file path")
	fs.StringVar(&f.logFile, "log-file", "", "Client log file path")
	fs.StringVar(&f.logLevel, "log-level", "", "Log level (debug, info, warn, error)")
	fs.StringVarP(&f.databaseDSN, "db", "d", "", "Local database DSN")
	fs.StringVar(&f.databaseDriver, "db-driver", "", "Database driver: sqlite3 or sqlite")
	fs.StringVarP(&f.adapterAddress, "address", "a", "", "Remote API base URL")
	fs.StringVar(&f.wsAddress, "ws-address", "", "Live-update WebSocket URL")
	fs.DurationVar(&f.requestTimeout, "request-timeout", 0, "Request timeout (e.g., 30s, 1m)")
	fs.DurationVar(&f.syncInterval, "sync-interval", 0, "Periodic sync interval (e.g., 5m)")
	fs.DurationVar(&f.cycleTimeout, "cycle-timeout", 0, "Hard deadline of one sync cycle")
	fs.BoolVar(&f.moodsFullRefresh, "moods-full-refresh", false, "Re-fetch the full mood listing every cycle")
	fs.Var(&f.devServerAddress, "listen", "Dev server net address host:port")

	return f
}

func (f *Flags) toConfig() *StructuredConfig {
	return &StructuredConfig{
		App: App{
			LogFile:  f.logFile,
			LogLevel: f.logLevel,
		},
		Storage: Storage{
			DB: DB{
				DSN:    f.databaseDSN,
				Driver: f.databaseDriver,
			},
		},
		Adapter: Adapter{
			Address:        f.adapterAddress,
			WSAddress:      f.wsAddress,
			RequestTimeout: f.requestTimeout,
		},
		Workers: Workers{
			SyncInterval:     f.syncInterval,
			CycleTimeout:     f.cycleTimeout,
			MoodsFullRefresh: f.moodsFullRefresh,
		},
		DevServer: DevServer{
			Address: f.devServerAddress.String(),
		},
		JSONFilePath: f.jsonConfigPath,
	}
}

// String returns a canonical host:port string for a NetAddress.
// An unset address yields an empty string.
func (a *NetAddress) String() string {
	if a.Host == "" && a.Port == 0 {
		return ""
	}

	return a.Host + ":" + strconv.Itoa(a.Port)
}

// Set parses the input string of form host:port and populates the NetAddress.
// It validates the port range, checks IP correctness unless host is "localhost",
// and returns an error if the format or values are invalid.
func (a *NetAddress) Set(s string) error {
	hostAndPort := strings.Split(s, ":")
	if len(hostAndPort) != 2 {
		return errors.New("need address in a form `host:port`")
	}

	host := hostAndPort[0]
	port, err := strconv.Atoi(hostAndPort[1])
	if err != nil {
		return err
	}

	if port < 1 || port > 65535 {
		return errors.New("port number must be in range 1-65535")
	}

	if host != "localhost" {
		ip := net.ParseIP(host)
		if ip == nil {
			return errors.New("incorrect IP-address provided")
		}
	}

	a.Host = host
	a.Port = port
	return nil
}

// Type implements pflag.Value.
func (a *NetAddress) Type() string {
	return "host:port"
}
