package fwimport

import "github.com/etnz/mdimport/csvproc"

var messages = csvproc.NewMessages(map[string]string{
	"FWIMP00": "Corrected %s (%s) current price from %s to %s.",
	"FWIMP01": "Importing price data from file %s.",
	"FWIMP02": "Found a different balance in account %s: have %s, imported %s; Note: no security for ticker symbol [%s] (%s).",
	"FWIMP03": "Change %s (%s) price from %s to %s (%s).",
	"FWIMP04": "Found a different %s (%s) share balance in account %s: have %s, imported %s.",
	"FWIMP05": "Unable to obtain investment account with number [%s].",
	"FWIMP06": "Unable to obtain security [%s (%s)] in account %s.",
	"FWIMP07": "Changed %d security price%s.",
	"FWIMP08": "No new price data found.",
	"FWIMP09": "Found effective date%s %s.",
})
