package utils

type PartitionMap struct {
	MaxIndex       int // MaxIndex is partitioned into ParallelDegree partitions
	ParallelDegree int
	Partitions     [][2]int // Beginning and end index of partitions
}

func NewPartitionMap(ParallelDegree, maxIndex int) (pm *PartitionMap) {
	pm = &PartitionMap{
		MaxIndex:       maxIndex,
		ParallelDegree: ParallelDegree,
		Partitions:     make([][2]int, ParallelDegree),
	}
	for n := 0; n < ParallelDegree; n++ {
		pm.Partitions[n] = pm.Split1D(n)
	}
	return
}

func (pm *PartitionMap) GetBucketRange(bucketNum int) (kMin, kMax int) {
	kMin, kMax = pm.Partitions[bucketNum][0], pm.Partitions[bucketNum][1]
	return
}

func (pm *PartitionMap) GetBucketDimension(bn int) (kMax int) {
	if bn == -1 {
		kMax = pm.MaxIndex
		return
	}
	var (
		k1, k2 = pm.GetBucketRange(bn)
	)
	kMax = k2 - k1
	return
}

func (pm *PartitionMap) Split1D(threadNum int) (bucket [2]int) {
	// This routine splits one dimension into ParallelDegree pieces, with a maximum imbalance of one item
	var (
		Npart            = pm.MaxIndex / (pm.ParallelDegree)
		startAdd, endAdd int
		remainder        int
	)
	remainder = pm.MaxIndex % pm.ParallelDegree
	if remainder != 0 { // spread the remainder over the first chunks evenly
		if threadNum+1 > remainder {
			startAdd = remainder
			endAdd = 0
		} else {
			startAdd = threadNum
			endAdd = 1
		}
	}
	bucket[0] = threadNum*Npart + startAdd
	bucket[1] = bucket[0] + Npart + endAdd
	return
}

type indexed[T any] struct {
	n   int
	val T
}

/*
AllReduce is a blocking collective over NP cooperating goroutines. Every
participant contributes a partial value and receives the same combined
total; no participant returns before all partials have arrived. Partials
are folded in thread order so the result is identical from run to run
regardless of goroutine scheduling.
*/
type AllReduce[T any] struct {
	NP      int
	combine func(a, b T) T
	gather  chan indexed[T]
	scatter []chan T
}

func NewAllReduce[T any](NP int, combine func(a, b T) T) (r *AllReduce[T]) {
	r = &AllReduce[T]{
		NP:      NP,
		combine: combine,
		gather:  make(chan indexed[T], NP),
		scatter: make([]chan T, NP),
	}
	for n := 0; n < NP; n++ {
		r.scatter[n] = make(chan T, 1)
	}
	return
}

func (r *AllReduce[T]) Reduce(myThread int, partial T) T {
	r.gather <- indexed[T]{myThread, partial}
	if myThread == 0 {
		parts := make([]T, r.NP)
		for n := 0; n < r.NP; n++ {
			msg := <-r.gather
			parts[msg.n] = msg.val
		}
		total := parts[0]
		for n := 1; n < r.NP; n++ {
			total = r.combine(total, parts[n])
		}
		for n := 0; n < r.NP; n++ {
			r.scatter[n] <- total
		}
	}
	return <-r.scatter[myThread]
}
