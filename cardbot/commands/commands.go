package commands

import "github.com/disgoorg/disgo/discord"

var Commands = []discord.ApplicationCommandCreate{
	Open,
	Inventory,
	Trade,
	Admin,
}
