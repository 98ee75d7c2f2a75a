/*
 * Copyright (c) 2018-2020, NVIDIA CORPORATION. All rights reserved.
 */
package sink_test

import (
	. "github.com/onsi/ginkgo"
	. "github.com/onsi/ginkgo/extensions/table"
	. "github.com/onsi/gomega"

	"github.com/snaar/chopper/cmn"
	"github.com/snaar/chopper/sink"
)

var _ = Describe("MergeJoin", func() {
	Describe("CheckHeader", func() {
		DescribeTable("should accept identical headers on every pin",
			func(pinCount int) {
				h := cmn.NewHeader([]string{"a", "b"}, []cmn.FieldType{cmn.FieldInt, cmn.FieldString})
				mj := sink.NewMergeJoin(pinCount)
				for pin := 0; pin < pinCount; pin++ {
					Expect(mj.CheckHeader(cmn.PinID(pin), h)).To(Succeed())
				}
				Expect(mj.ProcessHeader()).To(Equal(h))
				ds, err := mj.GetDataSink()
				Expect(err).NotTo(HaveOccurred())
				Expect(ds).NotTo(BeNil())
			},
			Entry("two pins", 2),
			Entry("three pins", 3),
		)

		It("should reject a header mismatch on a later pin", func() {
			a := cmn.NewHeader([]string{"a"}, []cmn.FieldType{cmn.FieldInt})
			b := cmn.NewHeader([]string{"b"}, []cmn.FieldType{cmn.FieldInt})
			mj := sink.NewMergeJoin(2)
			Expect(mj.CheckHeader(0, a)).To(Succeed())
			Expect(mj.CheckHeader(1, b)).To(HaveOccurred())
		})

		It("should refuse to hand out a data sink until every pin has checked in", func() {
			h := cmn.NewHeader([]string{"a"}, []cmn.FieldType{cmn.FieldInt})
			mj := sink.NewMergeJoin(2)
			Expect(mj.CheckHeader(0, h)).To(Succeed())
			_, err := mj.GetDataSink()
			Expect(err).To(HaveOccurred())
		})
	})

	Describe("data-time behavior", func() {
		It("should pass rows through untouched", func() {
			h := cmn.NewHeader([]string{"a"}, []cmn.FieldType{cmn.FieldInt})
			mj := sink.NewMergeJoin(1)
			Expect(mj.CheckHeader(0, h)).To(Succeed())
			ds, err := mj.GetDataSink()
			Expect(err).NotTo(HaveOccurred())

			rows := []cmn.Row{{Timestamp: 1, FieldValues: []cmn.FieldValue{cmn.NewInt(7)}}}
			Expect(ds.WriteRowToPin(0, &rows)).To(Succeed())
			Expect(rows).To(HaveLen(1))
			Expect(rows[0].FieldValues[0].Equal(cmn.NewInt(7))).To(BeTrue())
			Expect(ds.Flush()).To(Succeed())
		})
	})
})

var _ = Describe("Split", func() {
	It("should report its target chain ids in declaration order", func() {
		targets := []cmn.ChainID{2, 0, 1}
		s := sink.NewSplit(targets)
		Expect(s.ChainIDs()).To(Equal(targets))
	})
})
