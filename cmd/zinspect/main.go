package main

import (
	"flag"
	"fmt"
	"strings"

	"github.com/go-logr/zapr"
	"go.uber.org/zap"
	"k8s.io/klog/v2"

	"github.com/zfskit/zinspect/pkg/config"
	"github.com/zfskit/zinspect/pkg/zfs"
)

// Version can be set at build time using -ldflags
// Example: go build -ldflags="-X main.Version=1.0.0"
var Version = "dev"

func main() {
	// Initialize klog first
	klog.InitFlags(nil)

	// Parse command line flags
	device := flag.String("device", "", "Control device path (default /dev/zfs, or ZFS_DEVICE_PATH)")
	configFile := flag.String("config", "", "Optional YAML config file")
	logLevel := flag.String("log-level", "", "Log level: info or debug")
	logFormat := flag.String("log-format", "text", "Log format: text or json")
	datasets := flag.Bool("datasets", false, "Also list each pool's datasets")
	showVersion := flag.Bool("version", false, "Show version and exit")
	flag.Parse()

	// Show version if requested
	if *showVersion {
		fmt.Printf("zinspect version %s\n", Version)
		return
	}

	// Validate and set log format
	if *logFormat != "text" && *logFormat != "json" {
		klog.Fatalf("Invalid log format: %s. Must be one of: text, json", *logFormat)
	}
	if *logFormat == "json" {
		var zapLog *zap.Logger
		var err error
		if *logLevel == "debug" {
			zapLog, err = zap.NewDevelopment()
		} else {
			zapLog, err = zap.NewProduction()
		}
		if err != nil {
			klog.Fatalf("Failed to initialize JSON logger: %v", err)
		}
		defer zapLog.Sync()

		// Set klog to use zap backend for JSON output
		klog.SetLogger(zapr.NewLogger(zapLog))
	}

	cfg := config.NewConfig()
	if *configFile != "" {
		if err := cfg.LoadFile(*configFile); err != nil {
			klog.Fatalf("Failed to load config file: %v", err)
		}
	}
	if *device != "" {
		cfg.DevicePath = *device
	}
	if *logLevel != "" {
		if *logLevel != "info" && *logLevel != "debug" {
			klog.Fatalf("Invalid log level: %s. Must be one of: info, debug", *logLevel)
		}
		cfg.LogLevel = *logLevel
	}

	// Set klog verbosity based on log level
	if cfg.IsDebug() {
		flag.Set("v", "1")
	}

	root, err := zfs.Open(cfg)
	if err != nil {
		klog.Fatalf("Failed to open %s: %v", cfg.DevicePath, err)
	}
	defer root.Close()

	if err := run(root, cfg, *datasets); err != nil {
		klog.Fatalf("zinspect failed: %v", err)
	}

	klog.Flush()
}

func run(root *zfs.Root, cfg *config.Config, withDatasets bool) error {
	pools, err := root.Pools()
	if err != nil {
		return err
	}

	for _, pool := range pools {
		if !cfg.IsPoolAllowed(pool.Name()) {
			klog.V(1).Infof("Skipping pool %s (not in whitelist)", pool.Name())
			continue
		}

		fmt.Printf("pool: %s\n", pool.Name())

		vdev, err := pool.RootVdev()
		if err != nil {
			return err
		}
		if err := printVdev(vdev, 1); err != nil {
			return err
		}

		if withDatasets {
			if err := printDatasets(pool); err != nil {
				return err
			}
		}
	}

	return nil
}

func printVdev(v *zfs.Vdev, depth int) error {
	stats, err := v.Stats()
	if err != nil {
		return err
	}
	indent := strings.Repeat("  ", depth)
	fmt.Printf("%s%s guid=%d alloc=%d space=%d\n", indent, v.Type(), v.GUID(), stats.Alloc, stats.Space)

	children, err := v.Children()
	if err != nil {
		return err
	}
	for _, c := range children {
		if err := printVdev(c, depth+1); err != nil {
			return err
		}
	}
	return nil
}

func printDatasets(pool *zfs.Pool) error {
	dss, err := pool.Datasets()
	if err != nil {
		return err
	}
	for _, ds := range dss {
		used, _, err := ds.PropUint64("used")
		if err != nil {
			return err
		}
		avail, _, err := ds.PropUint64("available")
		if err != nil {
			return err
		}
		mountpoint, ok, err := ds.PropString("mountpoint")
		if err != nil {
			return err
		}
		if !ok {
			mountpoint = "-"
		}
		fmt.Printf("  dataset: %s used=%d avail=%d mountpoint=%s\n", ds.Name(), used, avail, mountpoint)
	}
	return nil
}
