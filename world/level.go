package world

// LevelData is the "Data" compound inside level.dat: world metadata,
// spawn point and weather state. Grounded on
// original_source/claspymc/world.py's LevelData.
type LevelData struct {
	Version        int32  `nbt:"version"`
	Name           string `nbt:"LevelName"`
	Seed           int64  `nbt:"RandomSeed"`
	MapFeatures    bool   `nbt:"MapFeatures"`
	LastPlayed     int64  `nbt:"LastPlayed"`
	AllowCommands  bool   `nbt:"allowCommands"`
	Gamemode       int32  `nbt:"GameType"`
	Difficulty     byte   `nbt:"Difficulty"`
	Time           int64  `nbt:"Time"`
	DayTime        int64  `nbt:"DayTime"`
	SpawnX         int32  `nbt:"SpawnX"`
	SpawnY         int32  `nbt:"SpawnY"`
	SpawnZ         int32  `nbt:"SpawnZ"`
	Raining        bool   `nbt:"raining"`
	RainTime       int32  `nbt:"rainTime"`
	Thundering     bool   `nbt:"thundering"`
	ThunderTime    int32  `nbt:"thunderTime"`
	ClearWeatherTime int32 `nbt:"clearWeatherTime"`
}

// LevelContainer is the root compound of level.dat: a single "Data" tag.
type LevelContainer struct {
	Data LevelData `nbt:"Data"`
}
