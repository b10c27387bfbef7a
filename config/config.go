package config

import (
	"errors"
	"fmt"
	"io"
	"io/fs"
	"net"
	"os"
	"runtime"
	"strconv"
	"time"

	"github.com/indigo-web/statica/transport"
	jsoniter "github.com/json-iterator/go"
	"github.com/rs/zerolog"
	"gopkg.in/ini.v1"
)

var ErrInvalid = errors.New("invalid configuration")

type (
	Server struct {
		// Host is the interface to listen on. Empty means all of them.
		Host string `test:"nullable"`
		Port int
		// Workers is the number of connections served simultaneously.
		Workers int
		// ContentDir is the root directory files are served from.
		ContentDir string
	}

	NET struct {
		// ReadBufferSize is a size of buffer in bytes which will be used to read from
		// socket.
		ReadBufferSize int
		// MaxRequestSize limits the request line together with headers. Exceeding requests
		// are answered with 431.
		MaxRequestSize int
		// ReadTimeout limits the time a peer has to send the whole request.
		ReadTimeout time.Duration
		// WriteTimeout limits every single write. Zero disables it, so big files aren't
		// cut off on slow connections.
		WriteTimeout time.Duration `test:"nullable"`
	}

	Log struct {
		// Level is one of zerolog levels: trace, debug, info, warn, error, fatal,
		// panic or disabled.
		Level string
	}
)

// Config is the whole server configuration. Always start from Default(), as zero
// values aren't meaningful.
type Config struct {
	Server Server
	NET    NET
	Log    Log
}

func Default() *Config {
	return &Config{
		Server: Server{
			Port:       8080,
			Workers:    runtime.NumCPU(),
			ContentDir: "public",
		},
		NET: NET{
			ReadBufferSize: 1024,
			MaxRequestSize: 64 * 1024,
			ReadTimeout:    30 * time.Second,
		},
		Log: Log{
			Level: zerolog.LevelInfoValue,
		},
	}
}

// Load reads the INI file on top of the defaults. A missing file isn't an error, the
// defaults are returned then.
func Load(path string) (*Config, error) {
	if _, err := os.Stat(path); errors.Is(err, fs.ErrNotExist) {
		return Default(), nil
	}

	return parse(path)
}

// Parse is Load for in-memory INI data.
func Parse(data []byte) (*Config, error) {
	return parse(data)
}

func parse(source any) (*Config, error) {
	file, err := ini.Load(source)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalid, err)
	}

	cfg := Default()
	if err = cfg.apply(file); err != nil {
		return nil, err
	}

	return cfg, nil
}

func (c *Config) apply(file *ini.File) error {
	server := file.Section("server")
	network := file.Section("net")
	log := file.Section("log")

	for _, err := range []error{
		readString(server, "host", &c.Server.Host),
		readInt(server, "port", &c.Server.Port),
		readInt(server, "workers", &c.Server.Workers),
		readString(server, "content_dir", &c.Server.ContentDir),
		readInt(network, "read_buffer_size", &c.NET.ReadBufferSize),
		readInt(network, "max_request_size", &c.NET.MaxRequestSize),
		readDuration(network, "read_timeout", &c.NET.ReadTimeout),
		readDuration(network, "write_timeout", &c.NET.WriteTimeout),
		readString(log, "level", &c.Log.Level),
	} {
		if err != nil {
			return err
		}
	}

	return nil
}

func readString(section *ini.Section, key string, into *string) error {
	if section.HasKey(key) {
		*into = section.Key(key).String()
	}

	return nil
}

func readInt(section *ini.Section, key string, into *int) error {
	if !section.HasKey(key) {
		return nil
	}

	value, err := section.Key(key).Int()
	if err != nil {
		return fmt.Errorf("%w: %s.%s: %w", ErrInvalid, section.Name(), key, err)
	}

	*into = value
	return nil
}

func readDuration(section *ini.Section, key string, into *time.Duration) error {
	if !section.HasKey(key) {
		return nil
	}

	value, err := section.Key(key).Duration()
	if err != nil {
		return fmt.Errorf("%w: %s.%s: %w", ErrInvalid, section.Name(), key, err)
	}

	*into = value
	return nil
}

// Validate checks whether the server can be started with the config.
func (c *Config) Validate() error {
	switch {
	case c.Server.Port < 1 || c.Server.Port > 65535:
		return fmt.Errorf("%w: port must be in range 1..65535, got %d", ErrInvalid, c.Server.Port)
	case c.Server.Workers < 1:
		return fmt.Errorf("%w: workers must be at least 1, got %d", ErrInvalid, c.Server.Workers)
	case c.NET.ReadBufferSize < 1:
		return fmt.Errorf("%w: read buffer size must be positive", ErrInvalid)
	case c.NET.MaxRequestSize < 1:
		return fmt.Errorf("%w: max request size must be positive", ErrInvalid)
	case c.NET.ReadTimeout < 0 || c.NET.WriteTimeout < 0:
		return fmt.Errorf("%w: timeouts cannot be negative", ErrInvalid)
	}

	info, err := os.Stat(c.Server.ContentDir)
	if err != nil {
		return fmt.Errorf("%w: content dir: %w", ErrInvalid, err)
	}

	if !info.IsDir() {
		return fmt.Errorf("%w: content dir %s is not a directory", ErrInvalid, c.Server.ContentDir)
	}

	if _, err = c.LogLevel(); err != nil {
		return fmt.Errorf("%w: log level: %w", ErrInvalid, err)
	}

	return nil
}

// Addr returns the address to listen on.
func (c *Config) Addr() string {
	return net.JoinHostPort(c.Server.Host, strconv.Itoa(c.Server.Port))
}

func (c *Config) LogLevel() (zerolog.Level, error) {
	return zerolog.ParseLevel(c.Log.Level)
}

func (c *Config) Transport() transport.Config {
	return transport.Config{
		ReadBufferSize: c.NET.ReadBufferSize,
		MaxRequestSize: c.NET.MaxRequestSize,
		ReadTimeout:    c.NET.ReadTimeout,
		WriteTimeout:   c.NET.WriteTimeout,
	}
}

// Dump writes the config as indented JSON, keyed the same way as the INI file.
func (c *Config) Dump(w io.Writer) error {
	view := map[string]map[string]any{
		"server": {
			"host":        c.Server.Host,
			"port":        c.Server.Port,
			"workers":     c.Server.Workers,
			"content_dir": c.Server.ContentDir,
		},
		"net": {
			"read_buffer_size": c.NET.ReadBufferSize,
			"max_request_size": c.NET.MaxRequestSize,
			"read_timeout":     c.NET.ReadTimeout.String(),
			"write_timeout":    c.NET.WriteTimeout.String(),
		},
		"log": {
			"level": c.Log.Level,
		},
	}

	data, err := jsoniter.ConfigCompatibleWithStandardLibrary.MarshalIndent(view, "", "  ")
	if err != nil {
		return err
	}

	_, err = w.Write(append(data, '\n'))
	return err
}
