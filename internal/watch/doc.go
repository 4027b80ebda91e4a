// Package watch reruns generation when its inputs change on disk.
//
// Every rebuild is a full run over all inputs. Bursts of file events are
// collapsed by a Debouncer before the rebuild callback fires.
package watch
