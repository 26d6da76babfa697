/*
Package resilience provides a circuit breaker for calls to remote registries.

# States

	Closed --[failures]-> Open --[timeout]-> Half-Open --[successes]-> Closed
	                                           |
	                                       [failure]
	                                           v
	                                         Open

# Usage

	breaker := resilience.New("registry", resilience.Settings{
		Timeout: 30 * time.Second,
		ReadyToTrip: func(c resilience.Counts) bool {
			return c.ConsecutiveFailures >= 5
		},
		IsSuccessful: func(err error) bool {
			return err == nil || errors.Is(err, registry.ErrNotFound)
		},
	})

	item, err := resilience.Do(breaker, func() (types.RegistryItem, error) {
		return fetch(ctx, name)
	})

IsSuccessful lets callers keep expected errors, such as a missing item,
from counting toward tripping the breaker.
*/
package resilience
