package cmd

import (
	"fmt"

	"github.com/BarkinBalci/gearstick-cli/internal/core"
)

// List shows the records stored in the vault. Passwords and note
// content are not printed. With idsOnly only identifiers are printed,
// one per line, for use in scripts and completions.
func List(g *core.Gearstick, sorted, idsOnly bool) {
	v, err := g.Open()
	if err != nil {
		HandleError(err)
	}
	if sorted {
		v.SortCredentials()
		v.SortNotes()
	}

	if idsOnly {
		for _, c := range v.Credentials() {
			fmt.Println(c.ID())
		}
		for _, n := range v.Notes() {
			fmt.Println(n.ID())
		}
		return
	}

	fmt.Println("Credentials:")
	if v.CredentialCount() == 0 {
		fmt.Println("  (none)")
	}
	for _, c := range v.Credentials() {
		fmt.Printf("  %s %s  %s", favoriteMark(c.Favorite), c.ID(), c.Name)
		if c.Username != "" {
			fmt.Printf("  user=%s", c.Username)
		}
		if c.URL != "" {
			fmt.Printf("  %s", c.URL)
		}
		fmt.Println()
	}

	fmt.Println("\nNotes:")
	if v.NoteCount() == 0 {
		fmt.Println("  (none)")
	}
	for _, n := range v.Notes() {
		fmt.Printf("  %s %s  %s\n", favoriteMark(n.Favorite), n.ID(), n.Name)
	}
}

// Show prints a single record including its secret fields
func Show(g *core.Gearstick, id string, reveal bool) {
	c, n, err := g.Lookup(id)
	if err != nil {
		HandleError(err)
	}

	if c != nil {
		password := c.Password
		if !reveal {
			password = maskSecret(password)
		}
		fmt.Printf("Credential %s\n", c.ID())
		fmt.Printf("  Name:     %s\n", c.Name)
		fmt.Printf("  Favorite: %t\n", c.Favorite)
		fmt.Printf("  Username: %s\n", c.Username)
		fmt.Printf("  Password: %s\n", password)
		fmt.Printf("  URL:      %s\n", c.URL)
		return
	}

	fmt.Printf("Note %s\n", n.ID())
	fmt.Printf("  Name:     %s\n", n.Name)
	fmt.Printf("  Favorite: %t\n", n.Favorite)
	fmt.Println()
	fmt.Println(n.Content)
}
