package global

func (w *World) settingsManagerTick() {
	for _, m := range w.inbox.setVisibleRange {
		if s, ok := w.settings[m.ConnectionGlobalWorldID]; ok {
			s.VisibleRange = m.Packet.Range
			continue
		}
		w.settings[m.ConnectionGlobalWorldID] = &Settings{
			ConnectionID: m.ConnectionGlobalWorldID,
			VisibleRange: m.Packet.Range,
		}
	}
	w.inbox.setVisibleRange = w.inbox.setVisibleRange[:0]
}
