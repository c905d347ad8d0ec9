package version

import (
	"encoding/json"
	"log"
	"os"
)

type Info struct {
	Version string `json:"version"`
}

func Load() Info {
	return LoadFrom("version.json")
}

func LoadFrom(path string) Info {
	data, err := os.ReadFile(path)
	if err != nil {
		log.Printf("warning: could not read %s: %v", path, err)
		return Info{Version: "0.0.0"}
	}
	var info Info
	if err := json.Unmarshal(data, &info); err != nil {
		log.Printf("warning: could not parse %s: %v", path, err)
		return Info{Version: "0.0.0"}
	}
	return info
}
