package pipeline

import (
	"errors"
	"io"
	"log"
	"os"
	"testing"

	"tellus/internal/config"
	"tellus/internal/world"
	"tellus/pkg/terrainpack"
)

func TestMain(m *testing.M) {
	log.SetOutput(io.Discard)
	os.Exit(m.Run())
}

func smallConfig() config.WorldGen {
	seed := int64(42)
	cfg := config.Default()
	cfg.Width = 10
	cfg.Height = 10
	cfg.Depth = 20
	cfg.Scale = 5
	cfg.Octaves = 1
	cfg.Persistence = 0.5
	cfg.Lacunarity = 2
	cfg.Seed = &seed
	cfg.Ground = 5
	cfg.ZScale = 10
	return cfg
}

func twoBandPack() *terrainpack.Pack {
	return &terrainpack.Pack{
		Palette: map[string]string{"low": "#3366aa", "high": "forestgreen"},
		Terrains: []terrainpack.TerrainDef{
			{Name: "low", Index: 1, Color: "#low", Levels: &terrainpack.LevelSpan{0, 3}},
			{Name: "high", Index: 2, Color: "#high", Levels: &terrainpack.LevelSpan{4, 255}},
		},
	}
}

func TestRunEndToEnd(t *testing.T) {
	cfg := smallConfig()
	res, err := Run(cfg, twoBandPack())
	if err != nil {
		t.Fatalf("Run: %v", err)
	}

	want := 0
	for y := 0; y < cfg.Height; y++ {
		for x := 0; x < cfg.Width; x++ {
			if _, ok := res.Model.At(x, y, cfg.Ground); !ok {
				t.Errorf("column (%d,%d) has no voxel at ground", x, y)
			}
			top := res.Mesh.ColumnTop(x, y)
			if top < cfg.Ground {
				t.Errorf("column (%d,%d) top %d below ground", x, y, top)
			}
			if _, ok := res.Model.At(x, y, top+1); ok {
				t.Errorf("column (%d,%d) has a voxel above its top", x, y)
			}
			want += top - cfg.Ground + 1
		}
	}
	if res.Model.Len() != want {
		t.Errorf("model has %d voxels, expected %d", res.Model.Len(), want)
	}
	if c := res.Model.PaletteColor(2); c.G != 139 {
		t.Errorf("palette index 2 not registered: %v", c)
	}
	if len(res.Timings.Stages()) == 0 {
		t.Errorf("no stages timed")
	}
}

func TestRunDeterministic(t *testing.T) {
	a, err := Run(smallConfig(), twoBandPack())
	if err != nil {
		t.Fatal(err)
	}
	b, err := Run(smallConfig(), twoBandPack())
	if err != nil {
		t.Fatal(err)
	}
	if string(a.Model.Encode()) != string(b.Model.Encode()) {
		t.Errorf("same settings produced different models")
	}
}

func TestRunDepthTooSmall(t *testing.T) {
	cfg := smallConfig()
	cfg.Depth = cfg.Ground + 1
	_, err := Run(cfg, twoBandPack())
	if !errors.Is(err, world.ErrCapacity) {
		t.Fatalf("expected ErrCapacity, got %v", err)
	}
	var ce *world.CapacityError
	if !errors.As(err, &ce) || ce.Z < cfg.Depth {
		t.Errorf("expected failing z >= depth, got %v", err)
	}
}

func TestRunThresholdGap(t *testing.T) {
	pack := twoBandPack()
	half := 0.5
	pack.Terrains = append(pack.Terrains, terrainpack.TerrainDef{Name: "lowland", Index: 3, Color: "white", Threshold: &half})
	_, err := Run(smallConfig(), pack)
	if !errors.Is(err, world.ErrClassification) {
		t.Fatalf("expected ErrClassification, got %v", err)
	}
}

func TestRunLevelGap(t *testing.T) {
	pack := twoBandPack()
	pack.Terrains = pack.Terrains[:1]
	_, err := Run(smallConfig(), pack)
	var ce *world.ClassificationError
	if !errors.As(err, &ce) {
		// columns reaching level 4 or above have no band
		t.Fatalf("expected *ClassificationError, got %v", err)
	}
	if ce.Level < 4 {
		t.Errorf("unexpected failing level %d", ce.Level)
	}
}

func TestRunInvalidScale(t *testing.T) {
	cfg := smallConfig()
	cfg.Scale = 0
	if _, err := Run(cfg, twoBandPack()); !errors.Is(err, world.ErrConfig) {
		t.Errorf("expected ErrConfig, got %v", err)
	}
}

func TestRunHugeZScale(t *testing.T) {
	cfg := smallConfig()
	cfg.ZScale = 1e20
	res, err := Run(cfg, twoBandPack())
	if !errors.Is(err, world.ErrConfig) {
		t.Fatalf("expected ErrConfig, got %v", err)
	}
	if res != nil {
		t.Errorf("expected no result for an overflowing zscale")
	}
}
