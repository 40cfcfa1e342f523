package main

import (
	"flag"
	"log"

	"tellus/internal/config"
	"tellus/internal/pipeline"
	"tellus/internal/preview"
	"tellus/pkg/terrainpack"
)

func main() {
	configPath := flag.String("config", "", "JSON settings file (defaults to the demo landscape)")
	out := flag.String("out", "tellus.vox", "output .vox file")
	previewPath := flag.String("preview", "", "optional PNG preview path")
	previewScale := flag.Int("preview-scale", 4, "preview pixels per column")
	seed := flag.Int64("seed", 0, "noise seed (overrides the config)")
	randomSeed := flag.Bool("random-seed", false, "draw a fresh seed instead of the configured one")
	pack := flag.String("pack", "", "terrain pack name (overrides the config)")
	flag.Parse()

	cfg := config.Default()
	if *configPath != "" {
		loaded, err := config.Load(*configPath)
		if err != nil {
			log.Fatalf("Failed to load config: %v", err)
		}
		cfg = loaded
	}
	flag.Visit(func(f *flag.Flag) {
		switch f.Name {
		case "seed":
			s := *seed
			cfg.Seed = &s
		case "pack":
			cfg.TerrainPack = *pack
		}
	})
	if *randomSeed {
		cfg.Seed = nil
	}

	terrains, err := terrainpack.NewLoader(cfg.PackDir).LoadPack(cfg.TerrainPack)
	if err != nil {
		log.Fatalf("Failed to load terrain pack: %v", err)
	}

	res, err := pipeline.Run(cfg, terrains)
	if err != nil {
		log.Fatalf("Generation failed: %v", err)
	}

	if err := res.Model.Save(*out); err != nil {
		log.Fatalf("Failed to save model: %v", err)
	}
	log.Printf("Wrote %s (%dx%dx%d, seed %d)", *out, cfg.Width, cfg.Height, cfg.Depth, res.Noise.Seed())

	if *previewPath != "" {
		img := preview.Image(res.Mesh, res.Colors, res.Palette, *previewScale)
		if err := preview.WritePNG(*previewPath, img); err != nil {
			log.Fatalf("Failed to write preview: %v", err)
		}
		log.Printf("Wrote preview %s", *previewPath)
	}
}
