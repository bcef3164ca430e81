package main

import (
	"fmt"
	"io"
	"strconv"

	"github.com/olekukonko/tablewriter"

	"github.com/udisondev/ronet/internal/login/serverpackets"
	"github.com/udisondev/ronet/internal/model"
)

func printServers(w io.Writer, servers []serverpackets.ServerEntry) {
	tw := tablewriter.NewWriter(w)
	tw.SetHeader([]string{"#", "Name", "Address", "Users", "Type"})
	tw.SetBorder(true)
	tw.SetAutoWrapText(false)

	for i, s := range servers {
		tw.Append([]string{
			strconv.Itoa(i),
			s.Name,
			s.Address(),
			strconv.Itoa(int(s.Users)),
			s.Type.String(),
		})
	}
	tw.Render()
}

func printCharacters(w io.Writer, chars []model.CharacterInfo) {
	tw := tablewriter.NewWriter(w)
	tw.SetHeader([]string{"Slot", "Name", "Class", "Base Lv", "Job Lv", "Zeny", "Map"})
	tw.SetBorder(true)
	tw.SetAutoWrapText(false)

	for _, ch := range chars {
		tw.Append([]string{
			strconv.Itoa(int(ch.CharNum)),
			ch.Name,
			strconv.Itoa(int(ch.Class)),
			strconv.Itoa(int(ch.BaseLevel)),
			fmt.Sprintf("%d", ch.JobLevel),
			fmt.Sprintf("%d", ch.Zeny),
			ch.LastMap,
		})
	}
	tw.Render()
}
