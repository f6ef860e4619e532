// Package command provides the text command surface: the parser, the command
// registry, and the dispatch into a running session.
package command

// Categories for organizing commands in help output.
const (
	CategoryMovement  = "movement"
	CategoryWorld     = "world"
	CategoryInventory = "inventory"
	CategoryCombat    = "combat"
	CategorySystem    = "system"
)

// Handler identifiers mapping commands to session operations.
const (
	HandlerGo        = "go"
	HandlerLook      = "look"
	HandlerTake      = "take"
	HandlerDrop      = "drop"
	HandlerUse       = "use"
	HandlerExamine   = "examine"
	HandlerEquip     = "equip"
	HandlerAttack    = "attack"
	HandlerTalk      = "talk"
	HandlerSearch    = "search"
	HandlerInsert    = "insert"
	HandlerCrawl     = "crawl"
	HandlerRepair    = "repair"
	HandlerRetreat   = "retreat"
	HandlerInventory = "inventory"
	HandlerStatus    = "status"
	HandlerSave      = "save"
	HandlerLoad      = "load"
	HandlerHelp      = "help"
	HandlerQuit      = "quit"
)

// Command defines a player-invocable command.
type Command struct {
	// Name is the canonical command name.
	Name string
	// Aliases are alternate names for this command.
	Aliases []string
	// Help is the short help text displayed to players.
	Help string
	// Category groups the command for help output.
	Category string
	// Handler selects the session operation.
	Handler string
}

// BuiltinCommands returns all built-in commands for the game.
func BuiltinCommands() []Command {
	return []Command{
		// Movement
		{Name: "go", Aliases: []string{"move", "walk"}, Help: "Move to an adjacent room (go <room>)", Category: CategoryMovement, Handler: HandlerGo},
		{Name: "crawl", Aliases: []string{"cr"}, Help: "Crawl through the dark (crawl <direction>)", Category: CategoryMovement, Handler: HandlerCrawl},
		{Name: "retreat", Aliases: nil, Help: "Back out of the dark crawl", Category: CategoryMovement, Handler: HandlerRetreat},

		// World
		{Name: "look", Aliases: []string{"l"}, Help: "Look around the current room", Category: CategoryWorld, Handler: HandlerLook},
		{Name: "examine", Aliases: []string{"ex"}, Help: "Examine an item or enemy (examine <name>)", Category: CategoryWorld, Handler: HandlerExamine},
		{Name: "search", Aliases: []string{"sr"}, Help: "Search a spot in the room (search <spot>)", Category: CategoryWorld, Handler: HandlerSearch},
		{Name: "insert", Aliases: nil, Help: "Insert a gear piece into the mechanism (insert <gear>)", Category: CategoryWorld, Handler: HandlerInsert},
		{Name: "talk", Aliases: nil, Help: "Speak into the room", Category: CategoryWorld, Handler: HandlerTalk},
		{Name: "repair", Aliases: []string{"fix"}, Help: "Repair the generator once you reach it", Category: CategoryWorld, Handler: HandlerRepair},

		// Inventory
		{Name: "take", Aliases: []string{"get", "pick"}, Help: "Pick up an item (take <item>)", Category: CategoryInventory, Handler: HandlerTake},
		{Name: "drop", Aliases: nil, Help: "Drop a carried item (drop <item>)", Category: CategoryInventory, Handler: HandlerDrop},
		{Name: "use", Aliases: nil, Help: "Use a carried item (use <item>)", Category: CategoryInventory, Handler: HandlerUse},
		{Name: "inventory", Aliases: []string{"inv", "i"}, Help: "List carried items", Category: CategoryInventory, Handler: HandlerInventory},

		// Combat
		{Name: "equip", Aliases: []string{"eq", "wield"}, Help: "Equip a carried weapon (equip <weapon>)", Category: CategoryCombat, Handler: HandlerEquip},
		{Name: "attack", Aliases: []string{"att", "hit"}, Help: "Attack an enemy (attack [enemy])", Category: CategoryCombat, Handler: HandlerAttack},
		{Name: "status", Aliases: []string{"st"}, Help: "Show your condition", Category: CategoryCombat, Handler: HandlerStatus},

		// System
		{Name: "save", Aliases: nil, Help: "Save the game", Category: CategorySystem, Handler: HandlerSave},
		{Name: "load", Aliases: nil, Help: "Load the most recent save", Category: CategorySystem, Handler: HandlerLoad},
		{Name: "help", Aliases: []string{"?"}, Help: "Show available commands", Category: CategorySystem, Handler: HandlerHelp},
		{Name: "quit", Aliases: []string{"exit"}, Help: "Leave the game", Category: CategorySystem, Handler: HandlerQuit},
	}
}
