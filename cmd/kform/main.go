package main

import (
	"flag"
	"os"

	"k8s.io/klog/v2"

	"github.com/renato0307/kform/internal/cmd"
)

func main() {
	// Suppress klog output from client-go; kform reports errors itself
	klog.InitFlags(nil)
	_ = flag.Set("logtostderr", "false")
	_ = flag.Set("stderrthreshold", "FATAL")
	_ = flag.Set("v", "0")
	defer klog.Flush()

	if err := cmd.Execute(); err != nil {
		klog.Flush()
		os.Exit(1)
	}
}
