package bot

import "github.com/bwmarrin/discordgo"

var categoryChoices = []*discordgo.ApplicationCommandOptionChoice{
	{Name: "Free", Value: "free"},
	{Name: "Premium", Value: "premium"},
	{Name: "Booster", Value: "booster"},
	{Name: "VIP", Value: "vip"},
}

func serviceOption(required bool) *discordgo.ApplicationCommandOption {
	return &discordgo.ApplicationCommandOption{
		Type:        discordgo.ApplicationCommandOptionString,
		Name:        "service",
		Description: "Service name (netflix, spotify, ...)",
		Required:    required,
	}
}

func claimCommand(name, description string) *discordgo.ApplicationCommand {
	return &discordgo.ApplicationCommand{
		Name:        name,
		Description: description,
		Options: []*discordgo.ApplicationCommandOption{
			serviceOption(true),
		},
	}
}

// commands lists the slash command surface registered on startup.
var commands = []*discordgo.ApplicationCommand{
	{
		Name:        "stock",
		Description: "Check available account stock",
	},
	{
		Name:        "restock",
		Description: "Add accounts to the stock",
		Options: []*discordgo.ApplicationCommandOption{
			{
				Type:        discordgo.ApplicationCommandOptionString,
				Name:        "category",
				Description: "Account category",
				Required:    true,
				Choices:     categoryChoices,
			},
			serviceOption(true),
			{
				Type:        discordgo.ApplicationCommandOptionAttachment,
				Name:        "file",
				Description: "Account file (.txt, one account per line)",
				Required:    true,
			},
		},
	},
	claimCommand("free", "Generate a free account"),
	claimCommand("premium", "Generate a premium account"),
	claimCommand("booster", "Generate a booster account"),
	claimCommand("vip", "Generate a VIP account"),
	{
		Name:        "addaccess",
		Description: "Grant a user category access",
		Options: []*discordgo.ApplicationCommandOption{
			{
				Type:        discordgo.ApplicationCommandOptionUser,
				Name:        "user",
				Description: "User to grant access to",
				Required:    true,
			},
			{
				Type:        discordgo.ApplicationCommandOptionString,
				Name:        "category",
				Description: "Access category",
				Required:    true,
				Choices:     categoryChoices,
			},
			{
				Type:        discordgo.ApplicationCommandOptionInteger,
				Name:        "time",
				Description: "Access duration (0 for permanent)",
				MinValue:    &zeroFloat,
			},
			{
				Type:        discordgo.ApplicationCommandOptionString,
				Name:        "unit",
				Description: "Time unit (only if time is specified)",
				Choices: []*discordgo.ApplicationCommandOptionChoice{
					{Name: "Minutes", Value: "minutes"},
					{Name: "Hours", Value: "hours"},
					{Name: "Days", Value: "days"},
					{Name: "Weeks", Value: "weeks"},
				},
			},
		},
	},
	{
		Name:        "cooldown",
		Description: "Set a category cooldown",
		Options: []*discordgo.ApplicationCommandOption{
			{
				Type:        discordgo.ApplicationCommandOptionString,
				Name:        "category",
				Description: "Category",
				Required:    true,
				Choices:     categoryChoices,
			},
			{
				Type:        discordgo.ApplicationCommandOptionInteger,
				Name:        "time",
				Description: "Cooldown time value",
				Required:    true,
				MinValue:    &zeroFloat,
			},
			{
				Type:        discordgo.ApplicationCommandOptionString,
				Name:        "unit",
				Description: "Time unit",
				Required:    true,
				Choices: []*discordgo.ApplicationCommandOptionChoice{
					{Name: "Seconds", Value: "seconds"},
					{Name: "Minutes", Value: "minutes"},
					{Name: "Hours", Value: "hours"},
					{Name: "Days", Value: "days"},
				},
			},
		},
	},
	{
		Name:        "clearstock",
		Description: "Clear a category's inventory",
		Options: []*discordgo.ApplicationCommandOption{
			{
				Type:        discordgo.ApplicationCommandOptionString,
				Name:        "category",
				Description: "Category to clear",
				Required:    true,
				Choices:     categoryChoices,
			},
			serviceOption(false),
		},
	},
}

var zeroFloat = float64(0)
