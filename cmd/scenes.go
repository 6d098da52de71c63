package cmd

import (
	"bytes"

	"github.com/df07/go-pathtracer/pkg/scene"
	"github.com/olekukonko/tablewriter"
	"github.com/urfave/cli"
)

// ListScenes prints the built-in scenes.
func ListScenes(ctx *cli.Context) error {
	setupLogging(ctx)
	logger.Noticef("available scenes\n%s", scenesTable(scene.Describe()))
	return nil
}

func scenesTable(infos []scene.SceneInfo) string {
	var buf bytes.Buffer
	table := tablewriter.NewWriter(&buf)
	table.SetAutoFormatHeaders(false)
	table.SetAutoWrapText(false)
	table.SetHeader([]string{"Scene", "Name", "Description"})
	for _, info := range infos {
		table.Append([]string{info.ID, info.DisplayName, info.Description})
	}
	table.Render()
	return buf.String()
}
