package commentary

// Score of exactly zero.
var zeroPhrases = []phrase{
	{"Asleep at the Wheel", "Did you fall asleep?"},
	{"Mouse Trouble", "The mouse is the thing you move with your hand."},
	{"Pacifist", "Peaceful protest?"},
	{"Geological Speed", "I've seen rocks move faster."},
	{"Zero Hero", "Zero? That takes actual effort."},
}

// Below 5000.
var tier1Phrases = []phrase{
	{"Grandma Speed", "My grandma clicks faster."},
	{"Trackpad User", "Are you using a trackpad?"},
	{"Wake Up", "Try opening your eyes next time."},
	{"Lag Blamer", "Lag? Sure, let's call it lag."},
	{"Feline Reflexes", "I've seen better clicking from a cat."},
	{"Participation Award", "You clicked. Just not enough."},
	{"Cold Hands", "Warm up round?"},
	{"Nice Try", "That was... an attempt."},
	{"Keep Going", "Keep practicing!"},
	{"Day Job Safe", "Don't quit your day job."},
	{"Sloth Life", "Your best reaction was {bestResponseTime}ms. A sloth is faster."},
	{"Cute Multiplier", "Max multiplier {maxMultiplier}x? That's cute."},
	{"Lost Count", "You missed so many, I lost count."},
	{"Dial-Up", "Median time {medianResponseTime}ms. Dial-up speeds."},
	{"Glacial Pace", "{worstResponseTime}ms worst click? Did you make a sandwich?"},
	{"Combo Breaker", "You broke the combo at {maxMultiplier}x. Tragic."},
}

// 5000 to 9999.
var tier2Phrases = []phrase{
	{"Meh", "Not bad, not great."},
	{"Average Joe", "Average. Just like my Tuesday."},
	{"Improving", "You're getting there."},
	{"Respectable", "Respectable effort."},
	{"C Plus", "Solid C+ performance."},
	{"Popper", "You popped some."},
	{"Listening", "Okay, I'm listening."},
	{"Better Than Dave", "Better than the last guy."},
	{"Decent", "Decent reflexes."},
	{"Mid", "Middle of the pack."},
	{"Okay Multiplier", "{maxMultiplier}x multiplier is okay, I guess."},
	{"Caffeinated?", "Best time {bestResponseTime}ms. Coffee kicking in?"},
	{"Sustained", "You sustained {maxMultiplier}x for a bit."},
	{"Human Standard", "{medianResponseTime}ms average. Human standard."},
	{"Warming Up", "{bestResponseTime}ms is getting warmer."},
	{"Almost There", "Hit {maxMultiplier}x but lost it. So close."},
	{"Steady Hands", "{medianResponseTime}ms median. Steady, at least."},
	{"Not Terrible", "Worst click {worstResponseTime}ms. Could be worse."},
	{"Spike", "One click was {bestResponseTime}ms. Do that more."},
	{"Rhythm Found", "Found a rhythm at {maxMultiplier}x."},
	{"Consistency?", "Median {medianResponseTime}ms. Work on consistency."},
	{"Potential", "I see potential in that {bestResponseTime}ms click."},
}

// 10000 to 14999.
var tier3Phrases = []phrase{
	{"Cooking", "Now we're cooking!"},
	{"On Fire", "Finger on fire!"},
	{"Impressive", "Impressive clicking."},
	{"Gamer?", "You actually play this game?"},
	{"Satisfying", "That was satisfying."},
	{"Rhythm Master", "Great rhythm!"},
	{"Pop Pop Pop", "Pop pop pop!"},
	{"Natural", "You're a natural."},
	{"High Score?", "High score material?"},
	{"Sweaty", "Sweaty palms?"},
	{"Locked In", "You are locked in."},
	{"Clean", "Clean execution."},
	{"Sharp", "Sharp reflexes today."},
	{"Flow State", "Entering flow state."},
	{"Clicking Machine", "You're a machine."},
	{"Blinked?", "{bestResponseTime}ms! Did you blink?"},
	{"Nice Flow", "Maxed at {maxMultiplier}x! Nice flow."},
	{"Proper Fast", "Median {medianResponseTime}ms is properly fast."},
	{"Tasty Streak", "That {maxMultiplier}x streak was tasty."},
	{"Laser Focus", "{bestResponseTime}ms reaction. Laser focus."},
	{"Combo King", "Held {maxMultiplier}x like a champ."},
	{"No Hesitation", "Average {medianResponseTime}ms. No hesitation."},
	{"Peak Performance", "Peaked at {maxMultiplier}x. Beautiful."},
	{"Lightning", "{bestResponseTime}ms is lightning fast."},
	{"Consistent", "Median {medianResponseTime}ms varies by only 10ms."},
	{"Zone", "You were in the zone at {maxMultiplier}x."},
	{"Precision", "{bestResponseTime}ms. Surgical precision."},
	{"Momentum", "Carried that {maxMultiplier}x momentum well."},
	{"Reflex Check", "{bestResponseTime}ms passed the reflex check."},
	{"Smooth Operator", "Median {medianResponseTime}ms. Smooth operator."},
	{"Multiplier Hunter", "Chasing that {maxMultiplier}x dream."},
	{"Fast Twitch", "{bestResponseTime}ms. Fast twitch fibers active."},
	{"Solid Run", "Only dropped to {worstResponseTime}ms once. Solid."},
	{"High Gear", "Shifted into high gear at {maxMultiplier}x."},
	{"Pro Material", "{medianResponseTime}ms average is pro material."},
	{"Crisp", "Inputs were crisp. Best: {bestResponseTime}ms."},
	{"Dialed In", "Dialed in to {maxMultiplier}x."},
	{"Electric", "That {bestResponseTime}ms click was electric."},
	{"Serious Business", "Median {medianResponseTime}ms. Serious business."},
	{"Clutch", "Saved the {maxMultiplier}x combo. Clutch."},
}

// 15000 and up.
var tier4Phrases = []phrase{
	{"ROBOT DETECTED", "ARE YOU A ROBOT?"},
	{"Unstoppable", "UNSTOPPABLE!"},
	{"CPU Overload", "My CPU is sweating."},
	{"Divinity", "Clicking divinity."},
	{"Keyboard Breaker", "Keyboard breaker!"},
	{"Legend", "Absolute legend."},
	{"Hacks?", "Cheater? Just kidding."},
	{"God Tier", "God tier."},
	{"I Bow", "I bow to you."},
	{"Touch Grass", "Touch grass maybe?"},
	{"Ascended", "You have ascended."},
	{"New Reality", "Is this real life?"},
	{"System Error", "Score too high. System error."},
	{"Illegal Speed", "{bestResponseTime}ms?! That's illegal."},
	{"Boss Mode", "Maintained {maxMultiplier}x like a boss."},
	{"Speed Demon", "Median {medianResponseTime}ms. You are speed."},
	{"Frame Perfect", "{bestResponseTime}ms is frame perfect."},
	{"Infinite Combo", "{maxMultiplier}x? Does it ever end?"},
	{"Neural Link", "{medianResponseTime}ms. Direct neural link detected."},
	{"Time Stop", "Did you stop time for that {bestResponseTime}ms click?"},
	{"Multiplier God", "Worshipping the {maxMultiplier}x multiplier."},
	{"Zero Latency", "Median {medianResponseTime}ms. Zero latency."},
	{"Aim Bot", "{bestResponseTime}ms. Toggling aim bot?"},
	{"Limit Break", "Broke the limit at {maxMultiplier}x."},
	{"Superhuman", "{medianResponseTime}ms average is superhuman."},
	{"Quantum", "{bestResponseTime}ms. Quantum clicking."},
	{"Max Power", "Hit {maxMultiplier}x max power."},
	{"Singularity", "Approaching singularity at {medianResponseTime}ms."},
}
