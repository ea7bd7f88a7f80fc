package lumen

// InjectKey queues a synthetic key press. Queued keys are dispatched one per
// frame at the start of RenderFrame, through the same path as real input.
func (s *Scene) InjectKey(key Key) {
	s.injectQueue = append(s.injectQueue, key)
}

// InjectKeys queues several key presses, one frame each.
func (s *Scene) InjectKeys(keys ...Key) {
	s.injectQueue = append(s.injectQueue, keys...)
}

// PendingKeys returns the number of injected keys not yet dispatched.
func (s *Scene) PendingKeys() int { return len(s.injectQueue) }

// processInjectedInput pops one key from the inject queue and dispatches it.
// Returns true if a key was consumed.
func (s *Scene) processInjectedInput() bool {
	if len(s.injectQueue) == 0 {
		return false
	}
	key := s.injectQueue[0]
	copy(s.injectQueue, s.injectQueue[1:])
	s.injectQueue = s.injectQueue[:len(s.injectQueue)-1]

	s.HandleInput(key)
	return true
}
