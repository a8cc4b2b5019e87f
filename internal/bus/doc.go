// Package bus connects mouse interaction handlers to a viewport's two
// consumer slots.
//
// A controller has exactly one manipulator consumer and one viewport
// consumer. The bus fills each slot with an ordered list of connections:
// the event is offered to each active connection in priority order and
// the first one that handles it wins.
//
// Basic usage:
//
//	b := bus.New()
//	conn := b.ConnectManipulator(gizmo.HandleMouseInteraction, bus.WithPriority(bus.PriorityHigh))
//	defer conn.Disconnect()
//
//	ctrl, err := controller.New(id, controller.Collaborators{
//		Manipulator: b.Manipulator(),
//		Viewport:    b.Viewport(),
//		...
//	})
package bus
