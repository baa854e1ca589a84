package command

import "strings"

// specs is the built-in command table. It covers the commands the typed
// client exposes plus the common diagnostic commands the REPL needs hints
// for; unknown commands still parse and encode, they just carry no metadata.
var specs = []Spec{
	{Name: "GET", Summary: "Get the value of a key", Arguments: "key", Group: "string"},
	{Name: "SET", Summary: "Set the value of a key", Arguments: "key value", Group: "string"},
	{Name: "SETNX", Summary: "Set the value of a key, only if it does not exist", Arguments: "key value", Group: "string"},
	{Name: "DEL", Summary: "Delete one or more keys", Arguments: "key [key ...]", Group: "generic"},
	{Name: "EXISTS", Summary: "Determine how many of the given keys exist", Arguments: "key [key ...]", Group: "generic"},
	{Name: "EXPIRE", Summary: "Set a key's time to live in seconds", Arguments: "key seconds", Group: "generic"},
	{Name: "TYPE", Summary: "Determine the type stored at a key", Arguments: "key", Group: "generic"},
	{Name: "SCAN", Summary: "Incrementally iterate the keyspace", Arguments: "cursor [MATCH pattern] [COUNT count] [TYPE type]", Group: "generic"},
	{Name: "SSCAN", Summary: "Incrementally iterate set members", Arguments: "key cursor [MATCH pattern] [COUNT count]", Group: "set"},
	{Name: "HSCAN", Summary: "Incrementally iterate hash fields", Arguments: "key cursor [MATCH pattern] [COUNT count]", Group: "hash"},
	{Name: "SMISMEMBER", Summary: "Check membership of multiple values in a set", Arguments: "key member [member ...]", Group: "set"},
	{Name: "SINTERCARD", Summary: "Cardinality of the intersection of sets", Arguments: "numkeys key [key ...] [LIMIT limit]", Group: "set", Layout: LayoutNumkeys},
	{Name: "ZDIFF", Summary: "Subtract sorted sets", Arguments: "numkeys key [key ...] [WITHSCORES]", Group: "sorted-set", Layout: LayoutNumkeys},
	{Name: "ZDIFFSTORE", Summary: "Subtract sorted sets and store the result", Arguments: "destination numkeys key [key ...]", Group: "sorted-set", Layout: LayoutDestNumkeys},
	{Name: "ZINTERCARD", Summary: "Cardinality of the intersection of sorted sets", Arguments: "numkeys key [key ...] [LIMIT limit]", Group: "sorted-set", Layout: LayoutNumkeys},
	{Name: "LMPOP", Summary: "Pop elements from the first non-empty list", Arguments: "numkeys key [key ...] LEFT|RIGHT [COUNT count]", Group: "list", Layout: LayoutNumkeys},
	{Name: "BLMPOP", Summary: "Blocking pop from the first non-empty list", Arguments: "timeout numkeys key [key ...] LEFT|RIGHT [COUNT count]", Group: "list", Layout: LayoutTimeoutNumkeys},
	{Name: "ZMPOP", Summary: "Pop members from the first non-empty sorted set", Arguments: "numkeys key [key ...] MIN|MAX [COUNT count]", Group: "sorted-set", Layout: LayoutNumkeys},
	{Name: "BZMPOP", Summary: "Blocking pop from the first non-empty sorted set", Arguments: "timeout numkeys key [key ...] MIN|MAX [COUNT count]", Group: "sorted-set", Layout: LayoutTimeoutNumkeys},
	{Name: "XADD", Summary: "Append an entry to a stream", Arguments: "key id field value [field value ...]", Group: "stream"},
	{Name: "XLEN", Summary: "Number of entries in a stream", Arguments: "key", Group: "stream"},
	{Name: "XRANGE", Summary: "Return stream entries in a range", Arguments: "key start end [COUNT count]", Group: "stream"},
	{Name: "XREVRANGE", Summary: "Return stream entries in a range, reversed", Arguments: "key end start [COUNT count]", Group: "stream"},
	{Name: "INFO", Summary: "Server information and statistics", Arguments: "[section ...]", Group: "server"},
	{Name: "CONFIG GET", Summary: "Read configuration parameters", Arguments: "parameter [parameter ...]", Group: "server"},
	{Name: "CLIENT LIST", Summary: "List client connections", Group: "connection"},
	{Name: "CLIENT INFO", Summary: "Information about the current connection", Group: "connection"},
	{Name: "CLUSTER NODES", Summary: "Cluster topology listing", Group: "cluster"},
	{Name: "FUNCTION STATS", Summary: "Scripting engine statistics", Group: "scripting"},
	{Name: "FUNCTION DUMP", Summary: "Serialize all function libraries", Group: "scripting"},
	{Name: "FUNCTION RESTORE", Summary: "Restore function libraries from a dump", Arguments: "payload [APPEND|FLUSH|REPLACE]", Group: "scripting"},
	{Name: "SCRIPT EXISTS", Summary: "Check script cache by digest", Arguments: "sha1 [sha1 ...]", Group: "scripting"},
	{Name: "PING", Summary: "Ping the server", Arguments: "[message]", Group: "connection"},
}

// Registry indexes the command table for lookup and completion.
type Registry struct {
	specs []Spec
	index map[string]int
}

// NewRegistry builds the registry from the built-in table.
func NewRegistry() *Registry {
	idx := make(map[string]int, len(specs))
	for i, s := range specs {
		idx[s.Name] = i
	}
	return &Registry{specs: specs, index: idx}
}

// Get returns the spec for a command name, or nil when unknown. Lookup is
// case-insensitive; compound names ("CONFIG GET") are exact entries.
func (r *Registry) Get(name string) *Spec {
	if i, ok := r.index[strings.ToUpper(name)]; ok {
		return &r.specs[i]
	}
	return nil
}

// Commands returns the command names starting with prefix, for completion.
func (r *Registry) Commands(prefix string) []string {
	prefix = strings.ToUpper(prefix)
	var matches []string
	for _, s := range r.specs {
		if strings.HasPrefix(s.Name, prefix) {
			matches = append(matches, s.Name)
		}
	}
	return matches
}

// Search returns the specs whose names start with prefix.
func (r *Registry) Search(prefix string) []Spec {
	prefix = strings.ToUpper(prefix)
	var matches []Spec
	for _, s := range r.specs {
		if strings.HasPrefix(s.Name, prefix) {
			matches = append(matches, s)
		}
	}
	return matches
}
