package chatrewind

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/sjzar/chatrewind/pkg/version"
)

func init() {
	rootCmd.AddCommand(versionCmd)
}

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "打印版本信息",
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Printf("chatrewind %s (%s) built at %s\n", version.Version, version.Commit, version.BuildTime)
	},
}
