package reminder

import "math/rand"

// quotes is the flavor pool for the daily digest. Selection is uniform
// random; repeats across days are fine.
var quotes = []string{
	"With great power comes great responsibility. Let's web up this W! 🕷️",
	"I am Iron Man. And we're here to win. 🦾",
	"Assemble the team, secure the victory! 🛡️",
	"Even gods must prove themselves. Show them your power! ⚡",
	"The world needs heroes. Be one today! 🦸",
	"Hulk smash... the competition! 💚",
	"For Wakanda! For victory! 🐆",
	"I can do this all day. And we will! 🛡️",
	"It's clobberin' time! Let's dominate! 🪨",
	"Flame on! Heat up that performance! 🔥",
	"Magneto never backs down. Neither do we! 🧲",
	"The Phoenix rises! Time to soar! 🔥",
	"Wolverine doesn't quit. We don't quit. 🦡",
	"Storm controls the battlefield. Control yours! ⛈️",
	"Spider-sense is tingling... it's telling me we're winning today! 🕸️",
	"Thor's hammer knows no defeat. Neither shall we! 🔨",
	"Black Panther strikes with precision. Execute the plan! 🐾",
	"Venom wants victory. Feed the hunger! 🖤",
	"Scarlet Witch bends reality. Bend the odds in our favor! ✨",
	"Doctor Strange sees all possibilities. We choose victory! 👁️",
	"Star-Lord's got the moves. Show them what you've got! 🎵",
	"Rocket's strategies never fail. Trust the process! 🦝",
	"Groot has one message: I am Groot! (We got this!) 🌳",
	"Luna Snow brings the freeze! Ice them out! ❄️",
	"Hela's power is unstoppable. Channel that energy! 👑",
	"Loki's tricks win games. Outsmart them! 🐍",
	"Adam Warlock protects his team. Protect yours! ⭐",
	"Namor rules the depths. Rule this match! 🌊",
	"Together we stand, divided we fall. Stay united! 🤝",
	"Every ultimate tells a story. Make yours legendary! 💫",
	"Support your team like Mantis supports hers! 🦋",
	"Tank the damage, secure the point! 🛡️",
	"Peni Parker brings the tech. Bring your A-game! 🤖",
	"Jeff the Shark knows no fear. Dive in! 🦈",
	"Squirrel Girl's optimism is unbeatable! Stay positive! 🐿️",
	"Cloak and Dagger work in perfect harmony. Sync up! 🌓",
	"Captain America leads by example. Lead your team! 🛡️",
	"Psylocke strikes from the shadows. Be unpredictable! 🗡️",
	"Moon Knight fights through the night. Never give up! 🌙",
	"Hawkeye never misses the shot that matters. Clutch it! 🏹",
	"Vanguard leads the charge. Push forward! ⚔️",
	"Communicate, coordinate, dominate! 📢",
	"Adapt or lose. We adapt! 🔄",
	"High ground is our ground! Take the advantage! ⬆️",
	"Focus fire, quick kill! Concentrate fire! 🔥",
	"This isn't just a game, it's a legacy! 🏆",
	"Avengers! Let's make it count! 🦸‍♂️",
	"Guardians protect what matters. Protect the objective! 🚀",
	"Maximum effort for maximum results! 💯",
	"Heroes never die... they respawn and clutch! ⭐",
}

func randomQuote() string {
	return quotes[rand.Intn(len(quotes))]
}
