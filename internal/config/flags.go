package config

import (
	"errors"
	"flag"
	"net"
	"strconv"
	"strings"
	"time"
)

// NetAddress holds structured network address data for host and port.
// It implements the flag.Value interface.
type NetAddress struct {
	Host string
	Port int
}

// ParseFlags parses all configuration flags.
//
// Flags:
//
//	-a registry address in format [host]:[port]
//	-f connection file path handed over by the launcher
//	-c/-config json file path with configs
//	-sync-timeout synchronous remote call timeout (e.g., "1h", "30m")
func ParseFlags() *StructuredConfig {
	var registryAddress NetAddress
	var connectionFile string
	var jsonConfigPath string
	var syncTimeout time.Duration

	flag.Var(&registryAddress, "a", "Registry net address host:port")
	flag.StringVar(&connectionFile, "f", "", "Launcher connection file path")
	flag.StringVar(&jsonConfigPath, "c", "", "JSON config file path")
	flag.StringVar(&jsonConfigPath, "config", "", "JSON config file path (alias)")
	flag.DurationVar(&syncTimeout, "sync-timeout", 0, "Sync request timeout (e.g., 1h, 30m)")

	flag.Parse()

	return &StructuredConfig{
		Registry: Registry{
			Host:          registryAddress.Host,
			NamespacePort: registryAddress.Port,
		},
		Session: Session{
			SyncRequestTimeout: syncTimeout,
			ConnectionFile:     connectionFile,
		},
		JSONFilePath: jsonConfigPath,
	}
}

// String returns a canonical host:port string for a NetAddress.
// If neither Host nor Port are set, it returns an empty string.
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

	if port < 1 {
		return errors.New("port number is a positive integer")
	}

	if host != "localhost" {
		ip := net.ParseIP(hostAndPort[0])
		if ip == nil {
			return errors.New("incorrect IP-address provided")
		}
	}

	a.Host = host
	a.Port = port
	return nil
}
