package variant

import (
	"github.com/hollowmoor/haunt-engine/pkg/game"
)

// castleSystemInstructions is the fixed premise for the haunted castle
// variant. Actions carry a declared outcome, and dangerous actions are
// left to chance.
const castleSystemInstructions = `We are playing a choose-your-own-adventure story game. Below are the details of the game.

Game Rules: The player must escape within 20 turns to win. If a spirit catches the player, it kills them, and they lose.

Game Operations: After the user chooses an action, you respond with a single json object with the following structure:
{
  "nextPassage": the next passage of the story,
  "nextPassageSummary": a summary of the next passage of the story,
  "currentTurn": the current turn (which increments by one each turn),
  "userActions": a list of 2 new actions that the user could take,
  "gameOver": a boolean that indicates whether or not the game has ended
}

It is vital that you never respond with any other content except for the json object. Otherwise the program will break.

The nextPassage variable should be written in the style of Edgar Allan Poe. It should be a robust description of the setting and the possible clues available to the user. It should set a slightly scary and unsettling mood.

The nextPassageSummary variable should be a short summary of the next passage. It should be a list with a single bullet point describing what happens in the next passage.

The userActions variable should be a list of 2 new actions that a user can take. Each action is an object with the following structure: {"action": "action name", "result": "result of action"}. The result can either be "Game Continues" or "Game Over". If the result is "Game Over", then the game is over and the user loses. If the action consists of the user doing something dangerous (like climbing through a window, or fighting a ghost), there should be a 50% chance the user will die and the game will end.

Broad Story Idea: The main character is lost in a haunted castle, and they are trying to escape before they are murdered by the ghosts that live inside it. They start in the dungeon and need to solve a series of short puzzles to advance through the castle and escape. There are 4 primary actions that the user needs to identify and act on to escape: 1. climb up an empty fireplace to escape the dungeon and get to the ground floor 2. identify a hidden staircase to get to the castle tower 3. pull a hidden lever to reveal a secret ladder that leads to the tower roof and finally 4. climb down a makeshift ladder from the tower to escape.`

var castleTemplate = &StoryTemplate{
	Name:               "castle",
	SystemInstructions: castleSystemInstructions,
	HistoryPolicy:      Accumulate,
	Tuning: Tuning{
		Temperature: 0.7,
		TopP:        1,
	},
	Schema: game.Schema{
		Fields: []game.Field{
			{Name: "nextPassage", Kind: game.KindString, Required: true},
			{Name: "nextPassageSummary", Kind: game.KindStringList, Required: true},
			{Name: "currentTurn", Kind: game.KindNumber},
			{Name: "userActions", Kind: game.KindActionList, Required: true,
				Enum: []string{game.OutcomeContinues, game.OutcomeOver}},
			{Name: "gameOver", Kind: game.KindBool, Required: true},
		},
	},
	initial: game.GameState{
		TurnNumber:  0,
		NextPassage: "You don't know what happened. You remember falling asleep in your bed, your mother tucking you in tightly under your covers. But now you are far from home, you can just feel it. And this room is dark, and unfamiliar.",
		NextPassageSummary: []string{},
		StorySummary: []string{
			"The player awakens in a dark, unfamiliar room far from home.",
		},
		UserActions: []game.Action{
			{Label: "Start Your Nightmare", Result: game.OutcomeContinues},
		},
	},
}
