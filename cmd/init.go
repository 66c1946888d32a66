package cmd

import (
	"fmt"

	"github.com/BarkinBalci/gearstick-cli/internal/core"
)

// Init creates a new empty vault file
func Init(g *core.Gearstick) {
	v, err := g.Init()
	if err != nil {
		HandleError(err)
	}

	fmt.Printf("✓ Initialized %s (version %s)\n", g.VaultPath(), v.Version())
	fmt.Println("note: records are stored unencrypted; keep the file private")
}
