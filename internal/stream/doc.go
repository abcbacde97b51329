// Package stream adapts github.com/samber/ro observables to the data services.
//
// [Single] turns a request/response call into a lazy ro.Observable that
// performs the call once per subscription, and [TryMap] is the fallible
// counterpart of ro.Map. [Observe], [First] and [Collect] subscribe with a
// context: cancelling it unsubscribes. [Latest] holds at most one value,
// replays it to late subscribers and pushes every publication to everyone.
package stream
