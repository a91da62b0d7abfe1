// Package version reports build metadata injected with -ldflags "-X".
package version

import (
	"fmt"
	"runtime"

	"github.com/bytedance/sonic"
	"github.com/spf13/cobra"
)

var (
	Version   = "dev"
	GitBranch = ""
	GitCommit = ""
	BuildTime = ""
)

type Info struct {
	Version   string `json:"version"`
	GitBranch string `json:"gitBranch,omitempty"`
	GitCommit string `json:"gitCommit,omitempty"`
	BuildTime string `json:"buildTime,omitempty"`
	GoVersion string `json:"goVersion"`
	Platform  string `json:"platform"`
}

func GetVersion() *Info {
	return &Info{
		Version:   Version,
		GitBranch: GitBranch,
		GitCommit: GitCommit,
		BuildTime: BuildTime,
		GoVersion: runtime.Version(),
		Platform:  fmt.Sprintf("%s/%s", runtime.GOOS, runtime.GOARCH),
	}
}

// String is the one-line form printed by "version --short".
func (v *Info) String() string {
	if v.GitCommit == "" {
		return v.Version
	}
	commit := v.GitCommit
	if len(commit) > 7 {
		commit = commit[:7]
	}
	return v.Version + "+" + commit
}

// Json renders the info indented for humans.
func (v *Info) Json() []byte {
	out, err := sonic.ConfigStd.MarshalIndent(v, "", "  ")
	if err != nil {
		return nil
	}
	return out
}

var short bool

var VersionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print build information",
	Args:  cobra.NoArgs,
	Run: func(cmd *cobra.Command, _ []string) {
		info := GetVersion()
		if short {
			fmt.Fprintln(cmd.OutOrStdout(), info.String())
			return
		}
		fmt.Fprintln(cmd.OutOrStdout(), string(info.Json()))
	},
}

func init() {
	VersionCmd.Flags().BoolVar(&short, "short", false, "print only the version")
}
