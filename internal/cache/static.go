package cache

// Static asset hashes, keyed by URL path. Computed once at startup and
// served as ETags.
var staticHashCache = NewCache[string, string]()

func GetStaticHash(path string) (string, bool) {
	return staticHashCache.Get(path)
}

func SetStaticHash(path, hash string) {
	staticHashCache.Set(path, hash)
}
