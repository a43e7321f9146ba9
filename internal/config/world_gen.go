package config

// GetSeed returns the seed used for newly created worlds
func GetSeed() uint32 {
	mu.RLock()
	defer mu.RUnlock()
	return current.Seed
}

// SetSeed sets the world seed
func SetSeed(seed uint32) {
	mu.Lock()
	defer mu.Unlock()
	current.Seed = seed
}

// GetWorldPath returns where the world snapshot is stored
func GetWorldPath() string {
	mu.RLock()
	defer mu.RUnlock()
	return current.WorldPath
}

// SetWorldPath sets the snapshot path; an empty path is ignored.
func SetWorldPath(path string) {
	if path == "" {
		return
	}
	mu.Lock()
	defer mu.Unlock()
	current.WorldPath = path
}

// GetChunkLoadRadius returns radius for chunk streaming around the player
func GetChunkLoadRadius() int {
	return GetViewDistance()
}
