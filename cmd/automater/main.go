// Copyright (c) 2018 PT Defender Nusa Semesta and contributors, All rights reserved.
//
// This file is part of Automater.
//
// Automater is free software: you can redistribute it and/or modify
// it under the terms of the GNU General Public License as published by
// the Free Software Foundation version 3 of the License.
//
// Automater is distributed in the hope that it will be useful,
// but WITHOUT ANY WARRANTY; without even the implied warranty of
// MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.  See the
// GNU General Public License for more details.
//
// You should have received a copy of the GNU General Public License
// along with Automater. If not, see <https://www.gnu.org/licenses/>.

package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"path/filepath"
	"time"

	"github.com/defenxor/automater/internal/pkg/automater/engine"
	"github.com/defenxor/automater/internal/pkg/automater/report"
	"github.com/defenxor/automater/internal/pkg/automater/sitedef"
	"github.com/defenxor/automater/internal/pkg/automater/target"
	"github.com/defenxor/automater/internal/pkg/shared/apm"
	"github.com/defenxor/automater/internal/pkg/shared/fs"
	"github.com/defenxor/automater/internal/pkg/shared/idgen"
	log "github.com/defenxor/automater/internal/pkg/shared/logger"
	"github.com/defenxor/automater/internal/pkg/shared/pprof"
	"github.com/defenxor/automater/internal/pkg/shared/str"

	_ "github.com/defenxor/automater/internal/pkg/plugin/wise"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

const (
	progName      = "automater"
	defaultSites  = "sites.xml"
	defaultRemote = "https://raw.githubusercontent.com/madrang/MadDefense-Automater/master/sites.xml"
)

var version = "2.1"

var errNoTarget = errors.New("no target given")

func init() {
	cobra.OnInitialize(initConfig)
	f := rootCmd.Flags()
	f.StringP("output", "o", "", "This option will output the results to a file")
	f.BoolP("bot", "b", false, "This option will output minimized results for a bot")
	f.StringP("cef", "f", "", "This option will output the results to a CEF formatted file")
	f.StringP("web", "w", "", "This option will output the results to an HTML file")
	f.StringP("csv", "c", "", "This option will output the results to a CSV file")
	f.IntP("delay", "d", 2, "This will change the delay between requests to the same source to the inputted seconds")
	f.StringP("source", "s", "allsources", "Only run the target against the named sources, separated by a semicolon. "+
		"Names are defined in the name attribute of the site element in the sites file")
	f.String("proxy", "", "This option will set a proxy to use (eg. proxy.example.com:8080)")
	f.StringP("useragent", "a", "Automater/"+version, "This option allows the user to set the user-agent seen by web servers")
	f.BoolP("vercheck", "V", false, "This option checks whether the local sites file matches the remote one")
	f.BoolP("refreshxml", "r", false, "This option refreshes the sites file from the remote location")
	f.BoolP("verbose", "v", false, "This option prints informational messages")
	f.Bool("dev", false, "Enable development environment specific setting")
	f.Bool("debug", false, "Enable debug messages for tracing and troubleshooting")
	f.String("sites", defaultSites, "Sites file to use, relative to the program directory unless absolute")
	f.String("remote", defaultRemote, "Remote location of the reference sites file")
	f.Int("workers", 1, "Number of concurrent lookups")
	f.Bool("skipPrivate", false, "Skip lookups of private IP address targets")
	f.Int("cacheDuration", 10, "Cache expiration time in minutes for site responses")
	f.Int("timeout", 15, "Request timeout in seconds")
	f.Bool("apm", false, "Enable elastic APM instrumentation")
	f.String("profile", "", "Enable profiler, can be set to cpu, memory, mutex, or block")

	for _, name := range []string{"output", "bot", "cef", "web", "csv", "delay", "source", "proxy",
		"useragent", "vercheck", "refreshxml", "verbose", "dev", "debug", "sites", "remote", "workers",
		"skipPrivate", "cacheDuration", "timeout", "apm", "profile"} {
		viper.BindPFlag(name, f.Lookup(name))
	}
}

func initConfig() {
	viper.SetEnvPrefix(progName)
	viper.AutomaticEnv()
	d, err := fs.GetDir(viper.GetBool("dev"))
	if err != nil {
		return
	}
	viper.SetConfigName(progName)
	viper.AddConfigPath(d)
	if err := viper.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			fmt.Fprintln(os.Stderr, "Cannot read config file:", err)
		}
	}
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		if errors.Is(err, errNoTarget) {
			os.Exit(1)
		}
		exit("Error returned from command", err)
	}
}

func exit(msg string, err error) {
	fmt.Fprintln(os.Stderr, msg+":", err)
	os.Exit(1)
}

var rootCmd = &cobra.Command{
	Use:   "automater <target>",
	Short: "IP, URL, and Hash Passive Analysis tool",
	Long: `
Automater looks up IP addresses, URLs and hashes on the sources listed in the sites file
and reports what they know about each target.

The target is one IP address (dash ranges like 10.0.0.1-5 accepted), URL or hash, or the
name of a file listing one target per line. Defanged targets such as 1[.]2[.]3[.]4 are
accepted too.`,
	Version:       version,
	Args:          cobra.MaximumNArgs(1),
	SilenceUsage:  true,
	SilenceErrors: true,
	RunE: func(cmd *cobra.Command, args []string) error {
		if len(args) == 0 {
			fmt.Println("[!] No argument given.")
			cmd.Help()
			return errNoTarget
		}
		return run(args[0])
	},
}

// resolvePath returns p, relative to dir unless it's absolute
func resolvePath(dir, p string) string {
	if p == "" || filepath.IsAbs(p) {
		return p
	}
	return filepath.Join(dir, p)
}

// sourceList parses the source option, an empty value means all sources
func sourceList(s string) []string {
	l := str.SplitList(s, ";")
	if len(l) == 0 {
		return []string{"allsources"}
	}
	return l
}

func run(arg string) (err error) {
	if err := log.Setup(viper.GetBool("verbose"), viper.GetBool("debug")); err != nil {
		return fmt.Errorf("cannot setup logger: %w", err)
	}
	d, err := fs.GetDir(viper.GetBool("dev"))
	if err != nil {
		return fmt.Errorf("cannot get current directory: %w", err)
	}

	if p := viper.GetString("profile"); p != "" {
		prof, err := pprof.GetProfiler(p, d)
		if err != nil {
			return err
		}
		defer prof.Stop()
	}
	apm.Enable(viper.GetBool("apm"))

	runID, err := idgen.GenerateID()
	if err != nil {
		return fmt.Errorf("cannot generate run ID: %w", err)
	}
	log.Info(log.M{Msg: "Starting " + progName + " " + version, RId: runID})

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	timeout := time.Duration(viper.GetInt("timeout")) * time.Second
	sitesFile := resolvePath(d, viper.GetString("sites"))
	remote := sitedef.Remote{
		URL:     viper.GetString("remote"),
		Proxy:   viper.GetString("proxy"),
		Timeout: timeout,
	}

	if viper.GetBool("refreshxml") {
		// failures are logged, the local file keeps being used
		_, _ = sitedef.Refresh(ctx, remote, sitesFile)
	}
	if viper.GetBool("vercheck") {
		if _, err := sitedef.CheckVersion(ctx, remote, sitesFile); err != nil {
			log.Warn(log.M{Msg: "There was an error while checking the version of the sites file, see " +
				remote.URL + ": " + err.Error(), RId: runID})
		}
	}

	sites, err := sitedef.Load(sitesFile)
	if err != nil {
		log.Warn(log.M{Msg: err.Error(), RId: runID})
	}

	targets := target.FromArg(arg)
	cfg := engine.Config{
		Delay:         time.Duration(viper.GetInt("delay")) * time.Second,
		Proxy:         viper.GetString("proxy"),
		UserAgent:     viper.GetString("useragent"),
		Sources:       sourceList(viper.GetString("source")),
		Workers:       viper.GetInt("workers"),
		SkipPrivate:   viper.GetBool("skipPrivate"),
		CacheDuration: viper.GetInt("cacheDuration"),
		Timeout:       timeout,
		RunID:         runID,
	}
	eng, err := engine.New(cfg, sites)
	if err != nil {
		return fmt.Errorf("cannot initialize lookups: %w", err)
	}
	results := eng.Run(ctx, targets)

	if err := report.Screen(os.Stdout, results, viper.GetBool("bot")); err != nil {
		return err
	}
	opts := report.Options{
		Text: viper.GetString("output"),
		CSV:  viper.GetString("csv"),
		CEF:  viper.GetString("cef"),
		HTML: viper.GetString("web"),
	}
	return report.Generate(os.Stdout, opts, results)
}
