package main

import (
	"fmt"
	"os"

	"github.com/df07/go-pathtracer/cmd"
	"github.com/urfave/cli"
)

func newApp() *cli.App {
	app := cli.NewApp()
	app.Name = "pathtracer"
	app.Usage = "render sphere scenes using path tracing"
	app.Version = "0.1.0"
	app.Flags = []cli.Flag{
		cli.BoolFlag{
			Name:  "v",
			Usage: "enable verbose logging",
		},
		cli.BoolFlag{
			Name:  "vv",
			Usage: "enable even more verbose logging",
		},
		cli.StringFlag{
			Name:  "env",
			Value: ".env",
			Usage: "optional .env file with configuration overrides",
		},
	}
	app.Commands = []cli.Command{
		{
			Name:  "render",
			Usage: "render a single frame",
			Description: `
Render a built-in scene with a fixed number of samples per pixel and write it
to disk. The format follows the output file extension (.png or .ppm).

When --out is not given the frame is written to
<output dir>/<scene>/render_<timestamp>.png. An interrupted render
(Ctrl-C or --timeout) writes nothing.`,
			Flags: []cli.Flag{
				cli.StringFlag{
					Name:  "scene, s",
					Value: "random-spheres",
					Usage: "scene to render (see the scenes command)",
				},
				cli.IntFlag{
					Name:  "width",
					Usage: "frame width (0 = scene default)",
				},
				cli.IntFlag{
					Name:  "height",
					Usage: "frame height (0 = scene default)",
				},
				cli.IntFlag{
					Name:  "spp",
					Usage: "samples per pixel (0 = scene default)",
				},
				cli.IntFlag{
					Name:  "bounces",
					Usage: "maximum scatter events per path (0 = scene default)",
				},
				cli.IntFlag{
					Name:  "workers, w",
					Usage: "parallel render workers (0 = one per logical core)",
				},
				cli.Int64Flag{
					Name:  "seed",
					Usage: "random seed (0 = configured seed or clock)",
				},
				cli.StringFlag{
					Name:  "out, o",
					Usage: "image filename for the rendered frame",
				},
				cli.BoolFlag{
					Name:  "no-bvh",
					Usage: "test every ray against every primitive",
				},
				cli.DurationFlag{
					Name:  "timeout",
					Usage: "abort the render after this long",
				},
				cli.UintFlag{
					Name:  "thumbnail",
					Usage: "also write a preview of this width next to the frame",
				},
				cli.StringFlag{
					Name:  "s3-key",
					Usage: "upload the frame to the configured S3 bucket under this key",
				},
			},
			Action: cmd.RenderFrame,
		},
		{
			Name:   "scenes",
			Usage:  "list built-in scenes",
			Action: cmd.ListScenes,
		},
		{
			Name:  "serve",
			Usage: "run the HTTP render service",
			Flags: []cli.Flag{
				cli.StringFlag{
					Name:  "addr",
					Usage: "listen address (default from configuration)",
				},
				cli.DurationFlag{
					Name:  "timeout",
					Usage: "per-request render timeout (default from configuration)",
				},
			},
			Action: cmd.Serve,
		},
	}
	return app
}

func main() {
	if err := newApp().Run(os.Args); err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}
