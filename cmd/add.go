package cmd

import (
	"context"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/BarkinBalci/gearstick-cli/internal/core"
	"github.com/BarkinBalci/gearstick-cli/internal/secret"
	"github.com/BarkinBalci/gearstick-cli/internal/vault"
)

// AddCredential stores a new credential. The password is generated when
// generate > 0, otherwise read from the environment or a prompt.
func AddCredential(ctx context.Context, g *core.Gearstick, c vault.Credential, generate int) {
	var password []byte
	if generate > 0 {
		password = GeneratedSecretOrExit(generate)
	} else {
		password = GetSecretOrExit()
	}
	defer secret.ClearBytes(password)
	c.Password = string(password)

	added, err := g.AddCredential(ctx, c)
	if err != nil {
		HandleError(err)
	}

	fmt.Printf("✓ Added credential %s (%s)\n", added.Name, added.ID())
	if generate > 0 {
		fmt.Printf("  generated password: %s\n", added.Password)
	}
}

// AddNote stores a new note. Content comes from args, or stdin when
// no args are given.
func AddNote(ctx context.Context, g *core.Gearstick, name string, favorite bool, args []string) {
	content := strings.Join(args, " ")
	if len(args) == 0 {
		if core.StdinIsTerminal() {
			fmt.Println("Enter note content, end with Ctrl-D:")
		}
		data, err := io.ReadAll(os.Stdin)
		if err != nil {
			HandleError(fmt.Errorf("failed to read note content: %w", err))
		}
		content = strings.TrimRight(string(data), "\n")
	}

	added, err := g.AddNote(ctx, vault.Note{Name: name, Favorite: favorite, Content: content})
	if err != nil {
		HandleError(err)
	}

	fmt.Printf("✓ Added note %s (%s)\n", added.Name, added.ID())
}
