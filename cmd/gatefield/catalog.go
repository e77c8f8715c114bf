package main

import (
	"fmt"
	"os"
	"runtime"
	"strconv"
	"strings"

	"github.com/olekukonko/tablewriter"
	"github.com/spf13/cobra"

	"github.com/gatefield/gatefield/internal/protocol"
	"github.com/gatefield/gatefield/internal/util"
)

func catalogCmd() *cobra.Command {
	var group string

	cmd := &cobra.Command{
		Use:   "catalog",
		Short: "List the message kinds",
		RunE: func(cmd *cobra.Command, args []string) error {
			var (
				want     protocol.Group
				filtered bool
			)
			if group != "" {
				g, ok := protocol.ParseGroup(strings.ToLower(group))
				if !ok {
					return fmt.Errorf("unknown group %q", group)
				}
				want, filtered = g, true
			}

			tw := tablewriter.NewWriter(os.Stdout)
			tw.SetHeader([]string{"Code", "Name", "Group", "Direction"})
			tw.SetAutoWrapText(false)

			n := 0
			for _, k := range protocol.Kinds() {
				if filtered && k.Group() != want {
					continue
				}
				tw.Append([]string{strconv.Itoa(int(k)), k.String(), k.Group().String(), k.Direction().String()})
				n++
			}
			tw.SetFooter([]string{"", "", "total", strconv.Itoa(n)})
			tw.Render()
			return nil
		},
	}

	cmd.Flags().StringVarP(&group, "group", "g", "", "only list kinds of this group")

	return cmd
}

func versionCmd() *cobra.Command {
	var short bool

	cmd := &cobra.Command{
		Use:   "version",
		Short: "Print version information",
		Run: func(cmd *cobra.Command, args []string) {
			if short {
				fmt.Println(version)
				return
			}

			h := util.Host()
			fmt.Printf("  Version:    %s\n", version)
			fmt.Printf("  Commit:     %s\n", commit)
			fmt.Printf("  Go version: %s\n", h.GoVersion)
			fmt.Printf("  OS/Arch:    %s/%s\n", runtime.GOOS, h.Arch)
			fmt.Printf("  Host:       %s (%s, %d cores)\n", h.Hostname, h.CPUModel, h.CPUCores)
		},
	}

	cmd.Flags().BoolVarP(&short, "short", "s", false, "print only the version number")

	return cmd
}
