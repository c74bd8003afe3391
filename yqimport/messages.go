package yqimport

import "github.com/etnz/mdimport/csvproc"

var messages = csvproc.NewMessages(map[string]string{
	"YQIMP00": "Corrected %s (%s) current price from %s to %s.",
	"YQIMP01": "Importing price data from file %s using market date %s.",
	"YQIMP03": "Change %s (%s) price from %s to %s (%s).",
	"YQIMP05": "Unable to obtain security for ticker symbol [%s] with price %s.",
	"YQIMP06": "Note: %s (%s) last traded on %s.",
	"YQIMP07": "Changed %d security price%s.",
	"YQIMP08": "No new price data found.",
})
