package main

import (
	"fmt"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/tree"
	"github.com/spf13/cobra"

	"github.com/phanxgames/gameloop"
)

var inspectCmd = &cobra.Command{
	Use:   "inspect <save>",
	Short: "Print the node tree stored in a save file",
	Args:  cobra.ExactArgs(1),
	RunE:  runInspect,
}

var (
	rootStyle  = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("5"))
	nameStyle  = lipgloss.NewStyle().Bold(true)
	kindStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("6"))
	dimStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("8"))
	enumStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("4")).MarginRight(1)
	groupLabel = "(group)"
)

func runInspect(cmd *cobra.Command, args []string) error {
	logger := newLogger(flagDebug)
	scene := gameloop.NewScene(gameloop.Rect{})
	scene.SetLogger(logger)
	if err := scene.LoadFile(args[0]); err != nil {
		return err
	}
	fmt.Fprintln(cmd.OutOrStdout(), renderTree(scene, args[0]))
	return nil
}

// renderTree draws every attached node of scene under a root labeled title.
func renderTree(scene *gameloop.Scene, title string) string {
	t := tree.Root(rootStyle.Render(fmt.Sprintf("%s (%d nodes)", title, scene.Len()))).
		Enumerator(tree.RoundedEnumerator).
		EnumeratorStyle(enumStyle)
	for _, id := range scene.Roots() {
		t.Child(nodeTree(scene, id))
	}
	return t.String()
}

func nodeTree(scene *gameloop.Scene, id gameloop.NodeID) any {
	label := describe(scene, id)
	children := scene.Children(id)
	if len(children) == 0 {
		return label
	}
	t := tree.Root(label).Enumerator(tree.RoundedEnumerator).EnumeratorStyle(enumStyle)
	for _, c := range children {
		t.Child(nodeTree(scene, c))
	}
	return t
}

func describe(scene *gameloop.Scene, id gameloop.NodeID) string {
	name := scene.Name(id)
	if name == "" {
		name = id.String()
	}
	sp := scene.Sprite(id)
	if sp == nil {
		return nameStyle.Render(name) + " " + dimStyle.Render(groupLabel)
	}
	detail := fmt.Sprintf("pos=(%.1f, %.1f) size=%.0fx%.0f vel=(%.1f, %.1f) %s",
		sp.Position.X, sp.Position.Y, sp.Size.X, sp.Size.Y, sp.Velocity.X, sp.Velocity.Y, sp.Shape)
	if sp.Collidable {
		detail += " collidable"
	}
	if sp.Texture != "" {
		detail += " tex=" + sp.Texture
	}
	return nameStyle.Render(name) + " " + kindStyle.Render(sp.Kind.String()) + " " + dimStyle.Render(detail)
}
