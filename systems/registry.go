package systems

// System IDs, in the order the game runs them each tick.
const (
	IDXRSync   = "xrSync"
	IDPlatform = "platform"
	IDFollow   = "followRig"
	IDMirror   = "mirror"
	IDTrace    = "trace"
)

// SystemInfo describes a system for logs and the debug panel.
type SystemInfo struct {
	ID          string // Internal identifier (used for perf tracking)
	Name        string // Display name
	Description string // What this system does
	Category    string // Grouping (e.g., "xr", "control")
}

// SystemRegistry holds metadata about all systems.
// This centralizes system naming so the panel and perf tracker stay in sync.
type SystemRegistry struct {
	systems []SystemInfo
	byID    map[string]SystemInfo
}

// NewSystemRegistry creates a registry with all known systems.
func NewSystemRegistry() *SystemRegistry {
	reg := &SystemRegistry{
		byID: make(map[string]SystemInfo),
	}
	reg.registerDefaults()
	return reg
}

// registerDefaults adds all known systems in run order.
func (r *SystemRegistry) registerDefaults() {
	r.Register(SystemInfo{ID: IDXRSync, Name: "XR Sync", Description: "Writes headset view poses", Category: "xr"})
	r.Register(SystemInfo{ID: IDPlatform, Name: "Platform", Description: "Steers the platform from keys", Category: "control"})
	r.Register(SystemInfo{ID: IDFollow, Name: "Follow Rig", Description: "Moves the tracking root onto the platform", Category: "xr"})
	r.Register(SystemInfo{ID: IDMirror, Name: "Mirror", Description: "Points desktop cameras along the eyes", Category: "xr"})
	r.Register(SystemInfo{ID: IDTrace, Name: "Trace", Description: "Records poses and perf windows", Category: "internal"})
}

// Register adds a system to the registry.
func (r *SystemRegistry) Register(info SystemInfo) {
	r.systems = append(r.systems, info)
	r.byID[info.ID] = info
}

// GetName returns the display name for a system ID.
// Falls back to the ID itself if not found.
func (r *SystemRegistry) GetName(id string) string {
	if info, ok := r.byID[id]; ok {
		return info.Name
	}
	return id
}

// IDs returns all system IDs in registration order.
func (r *SystemRegistry) IDs() []string {
	ids := make([]string, len(r.systems))
	for i, info := range r.systems {
		ids[i] = info.ID
	}
	return ids
}
