package usecase

// Wait blocks until the run started by the last Start call returns
func (uc *ReportUseCase) Wait() {
	uc.mu.RLock()
	done := uc.inflight
	uc.mu.RUnlock()
	if done != nil {
		<-done
	}
}
