package command

import (
	"fmt"
	"sort"
	"strings"

	"github.com/cmoritz/blackwood/internal/game/session"
)

// Result is the outcome of dispatching one input line.
type Result struct {
	// Output is the player-facing feedback text.
	Output string
	// Quit reports that the player asked to leave the game.
	Quit bool
}

// Dispatch parses a line, resolves it against the registry, and invokes the
// matching session operation.
//
// Precondition: reg and sess are non-nil.
// Postcondition: unknown commands produce a hint, never an error; session
// state changes only through the invoked operation.
func Dispatch(reg *Registry, sess *session.Session, line string) Result {
	parsed := Parse(line)
	if parsed.Command == "" {
		return Result{}
	}

	cmd, ok := reg.Resolve(parsed.Command)
	if !ok {
		return Result{Output: fmt.Sprintf("Unknown command %q. Try \"help\".", parsed.Command)}
	}

	switch cmd.Handler {
	case HandlerGo:
		return Result{Output: sess.Go(parsed.RawArgs)}
	case HandlerLook:
		return Result{Output: sess.Look()}
	case HandlerTake:
		return Result{Output: sess.Take(parsed.RawArgs)}
	case HandlerDrop:
		return Result{Output: sess.Drop(parsed.RawArgs)}
	case HandlerUse:
		return Result{Output: sess.Use(parsed.RawArgs)}
	case HandlerExamine:
		return Result{Output: sess.Examine(parsed.RawArgs)}
	case HandlerEquip:
		return Result{Output: sess.Equip(parsed.RawArgs)}
	case HandlerAttack:
		return Result{Output: sess.Attack(parsed.RawArgs)}
	case HandlerTalk:
		return Result{Output: sess.Talk(parsed.RawArgs)}
	case HandlerSearch:
		return Result{Output: sess.Search(parsed.RawArgs)}
	case HandlerInsert:
		return Result{Output: sess.InsertGear(parsed.RawArgs)}
	case HandlerCrawl:
		return Result{Output: sess.Crawl(parsed.RawArgs)}
	case HandlerRepair:
		return Result{Output: sess.RepairGenerator()}
	case HandlerRetreat:
		return Result{Output: sess.Retreat()}
	case HandlerInventory:
		return Result{Output: sess.InventoryText()}
	case HandlerStatus:
		return Result{Output: sess.Status()}
	case HandlerSave:
		return Result{Output: sess.SaveGame()}
	case HandlerLoad:
		return Result{Output: sess.LoadGame()}
	case HandlerHelp:
		return Result{Output: HelpText(reg)}
	case HandlerQuit:
		return Result{Output: "Goodbye.", Quit: true}
	default:
		return Result{Output: fmt.Sprintf("Unknown command %q. Try \"help\".", parsed.Command)}
	}
}

// HelpText renders the command list grouped by category.
func HelpText(reg *Registry) string {
	categories := reg.CommandsByCategory()
	order := make([]string, 0, len(categories))
	for cat := range categories {
		order = append(order, cat)
	}
	sort.Strings(order)

	var b strings.Builder
	b.WriteString("Commands:")
	for _, cat := range order {
		cmds := categories[cat]
		sort.Slice(cmds, func(i, j int) bool { return cmds[i].Name < cmds[j].Name })
		fmt.Fprintf(&b, "\n[%s]", cat)
		for _, cmd := range cmds {
			name := cmd.Name
			if len(cmd.Aliases) > 0 {
				name = fmt.Sprintf("%s (%s)", cmd.Name, strings.Join(cmd.Aliases, ", "))
			}
			fmt.Fprintf(&b, "\n  %-24s %s", name, cmd.Help)
		}
	}
	return b.String()
}
