package main

import (
	"fmt"
	"os"

	"fanlens/internal/catalog"
	"fanlens/internal/domain"
)

const (
	colorGreen = "\033[32m"
	colorRed   = "\033[31m"
	colorReset = "\033[0m"
)

// Auditoria offline del catalogo embebido: cuenta items y anchors por
// rasgo, revisa el spread de dificultad y valida los centroides de
// arquetipos. Sale con codigo distinto de cero si algo esta mal formado.
func main() {
	cat := catalog.Default()
	problems := 0

	fmt.Printf("catalogo: %d items, %d arquetipos\n\n", len(cat.Items()), len(cat.Archetypes()))

	for t := domain.Trait(0); t < domain.TraitCount; t++ {
		items := cat.ItemsByTrait(t)
		anchors := 0
		badOptions := 0
		minDiff, maxDiff := catalog.MaxDifficulty, catalog.MinDifficulty
		for _, item := range items {
			if item.IsAnchor {
				anchors++
			}
			if item.Difficulty < minDiff {
				minDiff = item.Difficulty
			}
			if item.Difficulty > maxDiff {
				maxDiff = item.Difficulty
			}
			if len(item.Options) < 2 {
				badOptions++
			}
			for _, opt := range item.Options {
				lo := 0.0
				if item.Type == domain.ItemTypeBinary {
					lo = -1.0
				}
				if opt.Value < lo || opt.Value > 1 {
					badOptions++
				}
			}
		}

		status := colorGreen + "ok" + colorReset
		switch {
		case len(items) < 3:
			status = colorRed + "pocos items" + colorReset
			problems++
		case anchors < 1:
			status = colorRed + "sin anchors" + colorReset
			problems++
		case maxDiff-minDiff < 1.0:
			status = colorRed + "dificultad plana" + colorReset
			problems++
		case badOptions > 0:
			status = colorRed + "opciones invalidas" + colorReset
			problems++
		}

		fmt.Printf("  %-22s items=%d anchors=%d dificultad=[%+.1f, %+.1f] %s\n",
			t, len(items), anchors, minDiff, maxDiff, status)
	}

	fmt.Println()
	for _, arch := range cat.Archetypes() {
		bad := false
		for _, v := range arch.Centroid {
			if v < 0 || v > 1 {
				bad = true
			}
		}
		if bad {
			fmt.Printf("  %s%-15s centroide fuera de [0,1]%s\n", colorRed, arch.ID, colorReset)
			problems++
			continue
		}
		fmt.Printf("  %s%-15s ok%s\n", colorGreen, arch.ID, colorReset)
	}

	if problems > 0 {
		fmt.Fprintf(os.Stderr, "\n%s%d problemas encontrados%s\n", colorRed, problems, colorReset)
		os.Exit(1)
	}
	fmt.Printf("\n%scatalogo sano%s\n", colorGreen, colorReset)
}
