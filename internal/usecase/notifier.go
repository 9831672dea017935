package usecase

// notify delivers one outbound event to a participant. Delivery is best
// effort: the peer connection may already be gone, and a failed send must
// never corrupt the state mutation that triggered it.
func (that *Coordinator) notify(handle, event string, data any) {
	log := that.logger.With("method", "notify")

	send, ok := that.conns[handle]
	if !ok {
		log.Debug("no connection for outbound event", "handle", handle, "event", event)
		return
	}

	if err := send(event, data); err != nil {
		log.Debug("outbound delivery failed", "handle", handle, "event", event, "error", err)
	}
}
