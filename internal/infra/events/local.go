package events

import "context"

// LocalPublisher доставляет события в hub этого же процесса (когда Kafka выключена)
type LocalPublisher struct {
	notifier ChangeNotifier
	recorder Recorder
}

// NewLocalPublisher создает новый локальный publisher
func NewLocalPublisher(notifier ChangeNotifier, recorder Recorder) *LocalPublisher {
	return &LocalPublisher{
		notifier: notifier,
		recorder: recorder,
	}
}

// Publish сразу сбрасывает кэш и будит подписчиков
func (p *LocalPublisher) Publish(ctx context.Context, event AppointmentChanged) error {
	err := p.notifier.Notify(ctx, event.Key())
	if p.recorder != nil {
		result := resultOK
		if err != nil {
			result = resultError
		}
		p.recorder.IncEvent(directionOut, string(event.Type), result)
	}
	return err
}
